package codec

import (
	"fmt"
	"testing"
)

// benchPayload mirrors the artifact payload shape: label list, index
// map and a dense float64 embedding matrix.
type benchPayload struct {
	Labels    []string       `json:"ind2label"`
	Index     map[string]int `json:"label2ind"`
	Embedding [][]float64    `json:"embedding"`
}

func newBenchPayload(n int) benchPayload {
	p := benchPayload{
		Labels:    make([]string, n),
		Index:     make(map[string]int, n),
		Embedding: make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		label := fmt.Sprintf("class-%04d", i)
		p.Labels[i] = label
		p.Index[label] = i

		row := make([]float64, n-1)
		for j := 0; j <= i && j < n-1; j++ {
			row[j] = float64(i*j)/float64(n) + 0.12345
		}
		p.Embedding[i] = row
	}

	return p
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Artifact(b *testing.B) {
	payload := newBenchPayload(64)

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, payload) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, payload) })
}

func BenchmarkCodec_Unmarshal_Artifact(b *testing.B) {
	payload := newBenchPayload(64)
	jsonData := MustMarshal(JSON{}, payload)

	b.Run("stdlib", func(b *testing.B) {
		var sink benchPayload
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink benchPayload
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}
