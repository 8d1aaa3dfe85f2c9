package bloat

import (
	"debug/elf"
	"fmt"
	"sort"
)

// Section is one allocated ELF section and its in-memory size.
type Section struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
}

// Report holds the measured sizes of one binary. Rollups follow the
// Berkeley size(1) convention: text covers executable and read-only
// sections, data the writable initialized ones, bss the zero-initialized.
type Report struct {
	Path     string    `json:"path"`
	Text     uint64    `json:"text"`
	Data     uint64    `json:"data"`
	BSS      uint64    `json:"bss"`
	Total    uint64    `json:"total"`
	Sections []Section `json:"sections"`
}

// Analyze measures the allocated sections of the ELF binary at path.
func Analyze(path string) (*Report, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	defer f.Close()

	r := &Report{Path: path}
	for _, s := range f.Sections {
		if s.Flags&elf.SHF_ALLOC == 0 || s.Size == 0 {
			continue
		}
		r.Sections = append(r.Sections, Section{Name: s.Name, Size: s.Size})
		switch {
		case s.Type == elf.SHT_NOBITS:
			r.BSS += s.Size
		case s.Flags&elf.SHF_WRITE != 0:
			r.Data += s.Size
		default:
			r.Text += s.Size
		}
	}
	r.Total = r.Text + r.Data + r.BSS
	sort.Slice(r.Sections, func(i, j int) bool {
		return r.Sections[i].Name < r.Sections[j].Name
	})
	return r, nil
}

// SectionDelta is the size change of one section between two binaries.
type SectionDelta struct {
	Name   string `json:"name"`
	Base   uint64 `json:"base"`
	Target uint64 `json:"target"`
	Delta  int64  `json:"delta"`
}

// DiffReport is the size delta between a base and a target binary.
type DiffReport struct {
	Base     string         `json:"base"`
	Target   string         `json:"target"`
	Text     int64          `json:"text"`
	Data     int64          `json:"data"`
	BSS      int64          `json:"bss"`
	Total    int64          `json:"total"`
	Sections []SectionDelta `json:"sections"`
}

// Diff computes target minus base. Sections present on only one side count
// with their full size, signed accordingly.
func Diff(base, target *Report) *DiffReport {
	d := &DiffReport{
		Base:   base.Path,
		Target: target.Path,
		Text:   int64(target.Text) - int64(base.Text),
		Data:   int64(target.Data) - int64(base.Data),
		BSS:    int64(target.BSS) - int64(base.BSS),
		Total:  int64(target.Total) - int64(base.Total),
	}

	baseSizes := make(map[string]uint64, len(base.Sections))
	for _, s := range base.Sections {
		baseSizes[s.Name] = s.Size
	}
	seen := make(map[string]bool, len(target.Sections))
	for _, s := range target.Sections {
		seen[s.Name] = true
		prev := baseSizes[s.Name]
		if s.Size == prev {
			continue
		}
		d.Sections = append(d.Sections, SectionDelta{
			Name:   s.Name,
			Base:   prev,
			Target: s.Size,
			Delta:  int64(s.Size) - int64(prev),
		})
	}
	for _, s := range base.Sections {
		if seen[s.Name] {
			continue
		}
		d.Sections = append(d.Sections, SectionDelta{
			Name:  s.Name,
			Base:  s.Size,
			Delta: -int64(s.Size),
		})
	}
	sort.Slice(d.Sections, func(i, j int) bool {
		return d.Sections[i].Name < d.Sections[j].Name
	})
	return d
}
