package billing

import "time"

// Block is a maximal run of gapless or overlapping entries of one case
type Block struct {
	Start   time.Time
	End     time.Time
	Entries []Rounded
	// PhaseID is the phase of the first entry; it is a reference key only
	PhaseID string
}

// Duration returns the covered duration of the block
func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// EntryIDs returns the ids of the entries in the block
func (b Block) EntryIDs() []string {
	ids := make([]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		ids = append(ids, e.EntryID)
	}
	return ids
}

// Combine merges entries into contiguous blocks. An entry joins the current
// block when it starts at or before the block end, so back-to-back entries
// merge. Callers pass the entries of a single case.
func Combine(entries []Rounded) []Block {
	if len(entries) == 0 {
		return nil
	}

	sorted := append([]Rounded(nil), entries...)
	sortByStart(sorted)

	var blocks []Block
	current := newBlock(sorted[0])
	for _, e := range sorted[1:] {
		if !e.Start.After(current.End) {
			current.Entries = append(current.Entries, e)
			if e.End.After(current.End) {
				current.End = e.End
			}
			continue
		}
		blocks = append(blocks, current)
		current = newBlock(e)
	}
	blocks = append(blocks, current)

	return blocks
}

func newBlock(first Rounded) Block {
	return Block{
		Start:   first.Start,
		End:     first.End,
		Entries: []Rounded{first},
		PhaseID: first.PhaseID,
	}
}
