package utils

import (
	"github.com/james-bowman/sparse"
)

type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) DOK {
	return DOK{sparse.NewDOK(nr, nc)}
}

func (m DOK) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m DOK) ToCSR() CSR {
	return CSR{M: m.M.ToCSR()}
}

type CSR struct {
	M *sparse.CSR
}

// RowNonZeros returns the column indices stored in row i
func (m CSR) RowNonZeros(i int) (cols []int) {
	raw := m.M.RawMatrix()
	return raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]]
}
