package port

// Encoder turns text into fixed-length embedding vectors. Implementations
// are deterministic for a given model version and carry no visible state.
type Encoder interface {
	// Encode returns one vector per input text.
	Encode(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the encoder model.
	ModelName() string
}
