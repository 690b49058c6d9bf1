package incore

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// gemm dispatches C <- alpha*A*B + beta*C for row-major A (m x k), B (k x n)
// and C (m x n) to the external Level-3 dense kernel.
func gemm(m, k, n int, alpha float64, a []float64, b []float64, beta float64, c []float64) {
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		// No contracted extent: the product is all zeros, only the beta
		// term of C survives.
		if beta == 0 {
			for i := range c {
				c[i] = 0
			}
		} else if beta != 1 {
			for i := range c {
				c[i] *= beta
			}
		}
		return
	}
	blas64.Implementation().Dgemm(
		blas.NoTrans, blas.NoTrans,
		m, n, k,
		alpha,
		a, k,
		b, n,
		beta,
		c, n,
	)
}
