//go:build femdebug

package element

// Debug builds check T·Tᵀ = I on every 12×12 transformation
const verifyTransforms = true
