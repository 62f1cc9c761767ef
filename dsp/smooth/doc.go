// Package smooth provides Gaussian smoothing of 1-D sequences.
//
// Gaussian matches the conventions of the common scientific-computing
// gaussian_filter: the kernel is truncated at four standard deviations and
// the input is extended by half-sample symmetric reflection
// (d c b a | a b c d | d c b a), which preserves the total mass of the
// sequence.
//
// Short kernels are applied by direct convolution; long kernels (wide
// smoothing of event plateaus) go through an FFT convolution.
package smooth
