package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	frameSize      = 1024
	frameHop       = 512
	numBands       = 26
	numCoefficents = 13

	// FeatureLength is the fixed width of a spectral feature vector:
	// per-coefficient mean followed by per-coefficient stddev.
	FeatureLength = 2 * numCoefficents
)

// Features reduces a mono PCM sample to a fixed-length vector of
// short-time cepstral coefficient statistics. The reduction keeps the
// per-coefficient mean and standard deviation over time, so clips of the
// same content at slightly different offsets still score close.
func Features(samples []float64) []float64 {
	fft := fourier.NewFFT(frameSize)
	frame := make([]float64, frameSize)
	spectrum := make([]complex128, frameSize/2+1)
	bands := make([]float64, numBands)

	var frames [][]float64
	for start := 0; start+frameSize <= len(samples); start += frameHop {
		copy(frame, samples[start:start+frameSize])
		window.Hann(frame)
		spectrum = fft.Coefficients(spectrum, frame)
		logBandEnergies(spectrum, bands)
		frames = append(frames, cepstrum(bands))
	}
	if len(frames) == 0 {
		// Clip shorter than one analysis frame: treat the whole sample
		// as a single zero-padded frame.
		copy(frame, samples)
		for i := len(samples); i < frameSize; i++ {
			frame[i] = 0
		}
		window.Hann(frame)
		spectrum = fft.Coefficients(spectrum, frame)
		logBandEnergies(spectrum, bands)
		frames = append(frames, cepstrum(bands))
	}

	out := make([]float64, FeatureLength)
	for c := 0; c < numCoefficents; c++ {
		var sum float64
		for _, f := range frames {
			sum += f[c]
		}
		mean := sum / float64(len(frames))
		var variance float64
		for _, f := range frames {
			d := f[c] - mean
			variance += d * d
		}
		out[c] = mean
		out[numCoefficents+c] = math.Sqrt(variance / float64(len(frames)))
	}
	return out
}

// logBandEnergies folds the power spectrum into numBands log-energy bands.
func logBandEnergies(spectrum []complex128, bands []float64) {
	bins := len(spectrum)
	perBand := float64(bins) / float64(len(bands))
	for b := range bands {
		lo := int(float64(b) * perBand)
		hi := int(float64(b+1) * perBand)
		if hi > bins {
			hi = bins
		}
		var energy float64
		for i := lo; i < hi; i++ {
			re := real(spectrum[i])
			im := imag(spectrum[i])
			energy += re*re + im*im
		}
		bands[b] = math.Log(energy + 1e-10)
	}
}

// cepstrum applies a DCT-II over the log band energies and keeps the
// leading coefficients. The transform is tiny (13x26), so it is written
// out directly rather than routed through an FFT plan.
func cepstrum(bands []float64) []float64 {
	n := float64(len(bands))
	coeffs := make([]float64, numCoefficents)
	for k := 0; k < numCoefficents; k++ {
		var sum float64
		for i, e := range bands {
			sum += e * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/n)
		}
		coeffs[k] = sum
	}
	return coeffs
}
