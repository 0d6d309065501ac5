package soia

import "testing"

func FuzzSkipUnused(f *testing.F) {
	f.Add([]byte("soia"))
	f.Add([]byte("soia\x00"))
	f.Add(append([]byte("soia"), byte(wireLen2), 1, 2))
	f.Add(append([]byte("soia"), byte(wireEnum248), 5, 3))
	f.Fuzz(func(t *testing.T, data []byte) {
		FuzzSkip(data)
	})
}
