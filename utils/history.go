package utils

// History keeps the fingerprints of recent generations to spot boards that
// settled into a still life or a short oscillation.
type History struct {
	size   int
	hashes []string
}

func NewHistory(size int) *History {
	return &History{size: size}
}

// Period returns how many generations back fingerprint last appeared, or 0
// if it is not in the history. The fingerprint is then recorded.
func (h *History) Period(fingerprint string) int {
	period := 0
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == fingerprint {
			period = len(h.hashes) - i
			break
		}
	}

	if h.size <= 0 {
		return period
	}
	h.hashes = append(h.hashes, fingerprint)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return period
}

// Reset forgets every recorded fingerprint.
func (h *History) Reset() {
	h.hashes = nil
}
