package usecase

import (
	"context"
	"fmt"
)

// Divide ro'yxatni n tadan bo'laklarga bo'lish. Oxirgi bo'lak qisqaroq bo'lishi mumkin.
func Divide[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n <= 0 {
		n = len(items)
	}

	chunks := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// uploadInBatches har bir bo'lak uchun upload ni ketma-ket chaqiradi, birinchi xatoda to'xtaydi
func uploadInBatches[T any](ctx context.Context, items []T, size int, upload func(context.Context, []T) (int, error)) (int, error) {
	chunks := Divide(items, size)
	rejected := 0
	for i, chunk := range chunks {
		n, err := upload(ctx, chunk)
		if err != nil {
			return rejected, fmt.Errorf("batch %d/%d: %w", i+1, len(chunks), err)
		}
		rejected += n
	}
	return rejected, nil
}
