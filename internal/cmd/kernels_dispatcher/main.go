// kernels_dispatcher emits the generated registration files that
// monomorphize the engine's kernels over the built-in type/op matrix:
//
//   - gen_register_kernels.go (package graphblas): the per-dtype kernel
//     instantiations of the reduce, element-wise, multiply, apply and select
//     workers;
//   - pkg/core/algebra/gen_builtins.go: the built-in operator registrations;
//   - pkg/core/dtypes/gen_casts.go: the (to, from) typecast table.
//
// Run from the repository root via `go generate ./...`.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path"
	"text/template"

	"k8s.io/klog/v2"

	"github.com/gosparse/graphblas/internal/must"
)

// numberTypes are the Go types of the numeric dtypes: the signed integers,
// then the unsigned integers, then the floats.
var numberTypes = []string{
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
}

// dtypeNames maps the Go type to its DType constant name.
var dtypeNames = map[string]string{
	"int8": "Int8", "int16": "Int16", "int32": "Int32", "int64": "Int64",
	"uint8": "Uint8", "uint16": "Uint16", "uint32": "Uint32", "uint64": "Uint64",
	"float32": "Float32", "float64": "Float64",
}

const header = "/***** File generated by ./internal/cmd/kernels_dispatcher. Don't edit it directly. *****/\n"

var kernelsTemplate = template.Must(template.New("kernels").Parse(header + `
package graphblas

func init() {
{{- range .Groups}}
	// {{.Comment}}
{{- $fn := .Fn}}
{{- range $.Types}}
	{{$fn}}[{{.}}]()
{{- end}}
	{{.BoolFn}}()
{{end -}}
}
`))

var builtinsTemplate = template.Must(template.New("builtins").Parse(header + `
package algebra

func init() {
	// Numeric operators.
{{- range .Types}}
	registerNumberOps[{{.}}]()
{{- end}}

	// Integer division semantics (division by zero yields zero).
{{- range .IntTypes}}
	registerIntegerDivOps[{{.}}]()
{{- end}}
{{- range .FloatTypes}}
	registerFloatMInv[{{.}}]()
{{- end}}

	// Boolean operators.
	registerBoolOps()
}
`))

var castsTemplate = template.Must(template.New("casts").Parse(header + `
package dtypes

func init() {
	// Numeric casts, every (to, from) pair.
{{- range $to := .Types}}
{{- range $from := $.Types}}
	registerCast({{index $.Names $to}}, {{index $.Names $from}}, castNumberGeneric[{{$to}}, {{$from}}])
{{- end}}
{{- end}}

	// Bool conversions: non-zero is true, true is 1.
{{- range .Types}}
	registerCast(Bool, {{index $.Names .}}, castToBoolGeneric[{{.}}])
{{- end}}
{{- range .Types}}
	registerCast({{index $.Names .}}, Bool, castFromBoolGeneric[{{.}}])
{{- end}}
	registerCast(Bool, Bool, castBoolToBool)
}
`))

type kernelGroup struct {
	Comment, Fn, BoolFn string
}

func emit(tmpl *template.Template, data any, relPath string) {
	var buf bytes.Buffer
	must.M(tmpl.Execute(&buf, data))
	fullPath := path.Join(must.M1(os.Getwd()), relPath)
	must.M(os.WriteFile(fullPath, buf.Bytes(), 0644))

	cmd := exec.Command("gofmt", "-w", fullPath)
	klog.V(1).Infof("\t%s\n", cmd)
	must.M(cmd.Run())
	fmt.Printf("✅ kernels_dispatcher:  \tsuccessfully generated %s\n", fullPath)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	var intTypes, floatTypes []string
	for _, t := range numberTypes {
		if t == "float32" || t == "float64" {
			floatTypes = append(floatTypes, t)
		} else {
			intTypes = append(intTypes, t)
		}
	}

	emit(kernelsTemplate, struct {
		Types  []string
		Groups []kernelGroup
	}{
		Types: numberTypes,
		Groups: []kernelGroup{
			{"Monoid reducers.", "registerReduceKernels", "registerBoolReduceKernels"},
			{"Element-wise workers.", "registerEwiseKernels", "registerBoolEwiseKernels"},
			{"Semiring multiply workers.", "registerMxMKernels", "registerBoolMxMKernels"},
			{"Unary apply workers.", "registerApplyKernels", "registerBoolApplyKernels"},
			{"Select value predicates.", "registerSelectKernels", "registerBoolSelectKernels"},
		},
	}, "gen_register_kernels.go")

	emit(builtinsTemplate, struct {
		Types, IntTypes, FloatTypes []string
	}{numberTypes, intTypes, floatTypes}, "pkg/core/algebra/gen_builtins.go")

	emit(castsTemplate, struct {
		Types []string
		Names map[string]string
	}{numberTypes, dtypeNames}, "pkg/core/dtypes/gen_casts.go")
}
