package element

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FormatMatrix renders a matrix as named rows for diagnostics
func FormatMatrix(name string, m mat.Matrix) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s [%d×%d] = [\n", name, rows, cols))
	for i := 0; i < rows; i++ {
		sb.WriteString("    ")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("% .6e", m.At(i, j)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]\n")

	return sb.String()
}
