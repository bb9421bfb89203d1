package encoder

// MockEncoder produces deterministic vectors from the input bytes.
// Useful for offline development and tests that don't care about
// semantic quality.
type MockEncoder struct {
	dimension int
}

func NewMockEncoder(dimension int) *MockEncoder {
	return &MockEncoder{dimension: dimension}
}

func (e *MockEncoder) Encode(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, e.dimension)
		j := 0
		for _, r := range texts[i] {
			if j >= e.dimension {
				break
			}
			vectors[i][j] = float32(r) / 1000.0
			j++
		}
	}
	return vectors, nil
}

func (e *MockEncoder) Dimension() int {
	return e.dimension
}

func (e *MockEncoder) ModelName() string {
	return "mock"
}
