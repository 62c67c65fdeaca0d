package run

import (
	"fmt"
	"strings"
)

// generate renders the full facade source for an interface's method set.
func generate(pkgName, ifaceName, mockName string, methods []method) string {
	var buf strings.Builder

	implName := implTypeName(mockName)

	fmt.Fprintf(&buf, "// Code generated by mimicgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import (\n\t\"github.com/toejough/mimic\"\n)\n\n")

	writeMockStruct(&buf, mockName, ifaceName, methods)
	writeConstructor(&buf, mockName, ifaceName, methods)

	fmt.Fprintf(&buf, "// Interface returns the mock as a %s implementation.\n", ifaceName)
	fmt.Fprintf(&buf, "func (m *%s) Interface() %s {\n", mockName, ifaceName)
	fmt.Fprintf(&buf, "\treturn &%s{mock: m}\n}\n\n", implName)

	fmt.Fprintf(&buf, "// %s implements %s by forwarding to the mock.\n", implName, ifaceName)
	fmt.Fprintf(&buf, "type %s struct {\n\tmock *%s\n}\n", implName, mockName)

	for _, meth := range methods {
		writeImplMethod(&buf, implName, ifaceName, meth)
	}

	return buf.String()
}

// implTypeName lowercases the mock name's first rune to form the unexported impl type.
func implTypeName(mockName string) string {
	return strings.ToLower(mockName[:1]) + mockName[1:] + "Impl"
}

// writeMockStruct writes the exported struct holding one function mock per method.
func writeMockStruct(buf *strings.Builder, mockName, ifaceName string, methods []method) {
	fmt.Fprintf(buf, "// %s holds one function mock per %s method.\n", mockName, ifaceName)
	fmt.Fprintf(buf, "type %s struct {\n", mockName)

	for _, meth := range methods {
		fmt.Fprintf(buf, "\t%s *mimic.FuncMock\n", meth.name)
	}

	fmt.Fprintf(buf, "}\n\n")
}

// writeConstructor writes the Mock<Interface> constructor.
func writeConstructor(buf *strings.Builder, mockName, ifaceName string, methods []method) {
	fmt.Fprintf(buf, "// Mock%s builds a %s whose function mocks reset with t's session.\n", ifaceName, mockName)
	fmt.Fprintf(buf, "func Mock%s(t mimic.TestReporter) *%s {\n", ifaceName, mockName)
	fmt.Fprintf(buf, "\treturn &%s{\n", mockName)

	for _, meth := range methods {
		fmt.Fprintf(buf, "\t\t%s: mimic.NewFunc(%q).BuildFor(t),\n", meth.name, meth.name)
	}

	fmt.Fprintf(buf, "\t}\n}\n\n")
}

// writeImplMethod writes one forwarding method on the unexported impl type.
func writeImplMethod(buf *strings.Builder, implName, ifaceName string, meth method) {
	fmt.Fprintf(buf, "\n// %s implements %s.%s by forwarding through the function mock.\n",
		meth.name, ifaceName, meth.name)
	fmt.Fprintf(buf, "func (impl *%s) %s(%s)%s {\n",
		implName, meth.name, signatureParams(meth.params), signatureResults(meth.results))

	callExpr := writeCallArgs(buf, meth)

	switch len(meth.results) {
	case 0:
		fmt.Fprintf(buf, "\timpl.mock.%s.Call(%s)\n", meth.name, callExpr)
	case 1:
		fmt.Fprintf(buf, "\tout := impl.mock.%s.Call(%s)\n\n", meth.name, callExpr)
		fmt.Fprintf(buf, "\tresult, _ := out.(%s)\n\n", meth.results[0])
		fmt.Fprintf(buf, "\treturn result\n")
	default:
		fmt.Fprintf(buf, "\tout := impl.mock.%s.Call(%s)\n\n", meth.name, callExpr)
		fmt.Fprintf(buf, "\tresults, _ := out.([]any)\n")
		writeResultExtraction(buf, meth.results)
	}

	fmt.Fprintf(buf, "}\n")
}

// writeCallArgs writes any variadic flattening preamble and returns the Call argument expression.
func writeCallArgs(buf *strings.Builder, meth method) string {
	variadic := len(meth.params) > 0 && meth.params[len(meth.params)-1].variadic
	if !variadic {
		names := make([]string, len(meth.params))
		for i, par := range meth.params {
			names[i] = par.name
		}

		return strings.Join(names, ", ")
	}

	fixed := meth.params[:len(meth.params)-1]
	last := meth.params[len(meth.params)-1]

	names := make([]string, len(fixed))
	for i, par := range fixed {
		names[i] = par.name
	}

	fmt.Fprintf(buf, "\tcallArgs := []any{%s}\n", strings.Join(names, ", "))
	fmt.Fprintf(buf, "\tfor _, value := range %s {\n\t\tcallArgs = append(callArgs, value)\n\t}\n\n", last.name)

	return "callArgs..."
}

// writeResultExtraction writes per-index type assertions for a multi-value return.
func writeResultExtraction(buf *strings.Builder, results []string) {
	names := make([]string, len(results))

	for i, typ := range results {
		names[i] = fmt.Sprintf("result%d", i+1)

		fmt.Fprintf(buf, "\n\tvar %s %s\n", names[i], typ)
		fmt.Fprintf(buf, "\tif len(results) > %d {\n", i)
		fmt.Fprintf(buf, "\t\t%s, _ = results[%d].(%s)\n\t}\n", names[i], i, typ)
	}

	fmt.Fprintf(buf, "\n\treturn %s\n", strings.Join(names, ", "))
}

// signatureParams renders the method parameter list.
func signatureParams(params []param) string {
	rendered := make([]string, len(params))

	for i, par := range params {
		typ := par.typ
		if par.variadic {
			typ = "..." + typ
		}

		rendered[i] = par.name + " " + typ
	}

	return strings.Join(rendered, ", ")
}

// signatureResults renders the method result list, with a leading space when nonempty.
func signatureResults(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0]
	default:
		return " (" + strings.Join(results, ", ") + ")"
	}
}
