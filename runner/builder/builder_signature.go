package builder

import (
	"fmt"
	"strings"

	"github.com/notargets/structpack/kernels"
)

// scalarParams are passed ahead of the buffers to every kernel that takes
// the grid scalars, in this order
var scalarParams = []string{
	"const int dimX",
	"const int dimY",
	"const int intStart",
	"const long longStart",
}

// GenerateKernelSignature generates the parameter list for a kernel
func (kb *Builder) GenerateKernelSignature(spec kernels.Spec) string {
	var params []string

	if spec.Scalars {
		params = append(params, scalarParams...)
	}

	for _, buf := range spec.Buffers {
		constQualifier := ""
		if buf.Const {
			constQualifier = "const "
		}
		params = append(params, fmt.Sprintf("%s%s* %s", constQualifier, buf.Type, buf.Name))
	}

	return strings.Join(params, ",\n\t")
}

// GenerateKernelDeclaration generates a complete kernel function declaration
func (kb *Builder) GenerateKernelDeclaration(spec kernels.Spec) string {
	return fmt.Sprintf("@kernel void %s(\n\t%s\n)",
		spec.Name,
		kb.GenerateKernelSignature(spec))
}

// GenerateKernel generates the full kernel source, preamble not included
func (kb *Builder) GenerateKernel(spec kernels.Spec) string {
	var sb strings.Builder

	sb.WriteString(kb.GenerateKernelDeclaration(spec))
	sb.WriteString(" {")
	sb.WriteString(spec.Body)
	sb.WriteString("}\n")

	return sb.String()
}
