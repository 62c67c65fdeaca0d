// Package run implements the mimicgen code generator.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// sentinel errors.
var (
	errUsage               = errors.New("usage: mimicgen <source.go> <InterfaceName> [--name <mockname>] [--out <file>]")
	errInterfaceNotFound   = errors.New("interface not found")
	errNotAnInterface      = errors.New("named type is not an interface")
	errEmbeddedUnsupported = errors.New("embedded interfaces are not supported")
)

// FileSystem abstracts file access so tests can run against an in-memory implementation.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// options holds the parsed command line.
type options struct {
	sourcePath string
	ifaceName  string
	mockName   string
	outPath    string
}

// Run executes the generator with the given command line arguments.
func Run(args []string, fileSys FileSystem, out io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	src, err := fileSys.ReadFile(opts.sourcePath)
	if err != nil {
		return err
	}

	file, err := decorator.Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.sourcePath, err)
	}

	iface, err := findInterface(file, opts.ifaceName)
	if err != nil {
		return fmt.Errorf("%w in %s", err, opts.sourcePath)
	}

	methods, err := collectMethods(iface)
	if err != nil {
		return err
	}

	code := generate(file.Name.Name, opts.ifaceName, opts.mockName, methods)

	const outPerm = 0o600

	err = fileSys.WriteFile(opts.outPath, []byte(code), outPerm)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s\n", opts.outPath)

	return nil
}

// parseArgs parses the command line into options, applying defaults.
func parseArgs(args []string) (options, error) {
	var opts options

	var positional []string

	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--name":
			if i+1 >= len(rest) {
				return opts, errUsage
			}

			i++
			opts.mockName = rest[i]
		case "--out":
			if i+1 >= len(rest) {
				return opts, errUsage
			}

			i++
			opts.outPath = rest[i]
		default:
			if strings.HasPrefix(rest[i], "-") {
				return opts, fmt.Errorf("%w: unknown flag %s", errUsage, rest[i])
			}

			positional = append(positional, rest[i])
		}
	}

	const wantPositional = 2
	if len(positional) != wantPositional {
		return opts, errUsage
	}

	opts.sourcePath = positional[0]
	opts.ifaceName = positional[1]

	if opts.mockName == "" {
		opts.mockName = opts.ifaceName + "Mock"
	}

	if opts.outPath == "" {
		opts.outPath = strings.ToLower(opts.mockName) + "_test.go"
	}

	return opts, nil
}

// findInterface locates the named interface type declaration in the file.
func findInterface(file *dst.File, name string) (*dst.InterfaceType, error) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*dst.GenDecl)
		if !ok {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*dst.TypeSpec)
			if !ok || typeSpec.Name.Name != name {
				continue
			}

			iface, ok := typeSpec.Type.(*dst.InterfaceType)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errNotAnInterface, name)
			}

			return iface, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", errInterfaceNotFound, name)
}

// param describes a single method parameter.
type param struct {
	name     string
	typ      string
	variadic bool
}

// method describes a single interface method.
type method struct {
	name    string
	params  []param
	results []string
}

// collectMethods extracts the method set from an interface declaration.
func collectMethods(iface *dst.InterfaceType) ([]method, error) {
	var methods []method

	for _, field := range iface.Methods.List {
		ftype, ok := field.Type.(*dst.FuncType)
		if !ok || len(field.Names) == 0 {
			return nil, errEmbeddedUnsupported
		}

		params, err := collectParams(ftype.Params)
		if err != nil {
			return nil, err
		}

		results, err := collectResults(ftype.Results)
		if err != nil {
			return nil, err
		}

		for _, name := range field.Names {
			methods = append(methods, method{name: name.Name, params: params, results: results})
		}
	}

	return methods, nil
}

// collectParams flattens a parameter field list, synthesizing names for unnamed parameters.
func collectParams(fields *dst.FieldList) ([]param, error) {
	if fields == nil {
		return nil, nil
	}

	var params []param

	for _, field := range fields.List {
		ellipsis, variadic := field.Type.(*dst.Ellipsis)

		fieldType := field.Type
		if variadic {
			fieldType = ellipsis.Elt
		}

		typ, err := renderType(fieldType)
		if err != nil {
			return nil, err
		}

		if len(field.Names) == 0 {
			params = append(params, param{
				name:     fmt.Sprintf("arg%d", len(params)+1),
				typ:      typ,
				variadic: variadic,
			})

			continue
		}

		for _, name := range field.Names {
			params = append(params, param{name: name.Name, typ: typ, variadic: variadic})
		}
	}

	return params, nil
}

// collectResults flattens a result field list into rendered type strings.
func collectResults(fields *dst.FieldList) ([]string, error) {
	if fields == nil {
		return nil, nil
	}

	var results []string

	for _, field := range fields.List {
		typ, err := renderType(field.Type)
		if err != nil {
			return nil, err
		}

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			results = append(results, typ)
		}
	}

	return results, nil
}
