//go:build !femdebug

package element

const verifyTransforms = false
