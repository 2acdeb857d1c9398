// Package pack reads and writes cockpit packs: a single JSON document
// carrying one cockpit, its panorama media, its instruments and its
// checklists. Items reference instruments positionally (instrumentIndex),
// the same shape the training backend accepts, so packs produced elsewhere
// load unchanged.
package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
)

// ErrBadReference is returned when a checklist item references an
// instrument index outside the pack's instrument list.
var ErrBadReference = errors.New("pack: checklist item references unknown instrument")

// MediaTypePanorama marks the media entry carrying the equirectangular
// image and its dimensions.
const MediaTypePanorama = "PANORAMA"

// File is the on-disk pack shape.
type File struct {
	Name         string      `json:"name"`
	Manufacturer string      `json:"manufacturer"`
	Model        string      `json:"model"`
	Type         string      `json:"type"`
	Description  string      `json:"description,omitempty"`
	Media        []Media     `json:"media"`
	Instruments  []Instrument `json:"instruments"`
	Checklists   []Checklist  `json:"checklists,omitempty"`
}

// Media is one media entry; only the PANORAMA entry is interpreted.
type Media struct {
	Link   string `json:"link"`
	Type   string `json:"type"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Instrument is one marker position and label.
type Instrument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// Checklist is one named ordered list of items.
type Checklist struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item references its instrument by position in the pack's instrument
// list.
type Item struct {
	Description     string `json:"description"`
	Order           int    `json:"order"`
	InstrumentIndex int    `json:"instrumentIndex"`
}

// Decode reads, schema-validates and unmarshals a pack, then checks that
// every item's instrument index is in range and that a panorama media
// entry with positive dimensions exists.
func Decode(r io.Reader) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}

	if _, err := f.panorama(); err != nil {
		return nil, err
	}
	for _, cl := range f.Checklists {
		for _, it := range cl.Items {
			if it.InstrumentIndex < 0 || it.InstrumentIndex >= len(f.Instruments) {
				return nil, fmt.Errorf("%w: index %d in checklist %q",
					ErrBadReference, it.InstrumentIndex, cl.Name)
			}
		}
	}
	return &f, nil
}

// Encode writes the pack as indented JSON.
func Encode(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func (f *File) panorama() (Media, error) {
	for _, m := range f.Media {
		if m.Type == MediaTypePanorama {
			if m.Width <= 0 || m.Height <= 0 {
				return Media{}, fmt.Errorf("pack: panorama media has invalid dimensions %dx%d", m.Width, m.Height)
			}
			return m, nil
		}
	}
	return Media{}, errors.New("pack: no PANORAMA media entry")
}

// Build turns a decoded pack into the domain aggregate, assigning fresh
// ids throughout.
func Build(f *File) (*cockpit.Cockpit, []*checklist.Checklist, error) {
	pano, err := f.panorama()
	if err != nil {
		return nil, nil, err
	}

	c := cockpit.New(f.Name, f.Manufacturer, f.Model, f.Type, f.Description,
		cockpit.Panorama{Link: pano.Link, Width: pano.Width, Height: pano.Height})

	markers := make([]*cockpit.Marker, 0, len(f.Instruments))
	for _, inst := range f.Instruments {
		markers = append(markers, c.Markers.Add(inst.X, inst.Y, inst.Name, inst.Description))
	}

	lists := make([]*checklist.Checklist, 0, len(f.Checklists))
	for _, pc := range f.Checklists {
		cl := checklist.New(pc.Name, c.Markers)
		for _, it := range pc.Items {
			if _, err := cl.AddItem(markers[it.InstrumentIndex].ID, it.Description, it.Order); err != nil {
				return nil, nil, fmt.Errorf("checklist %q: %w", pc.Name, err)
			}
		}
		lists = append(lists, cl)
	}
	return c, lists, nil
}

// Flatten turns a domain aggregate back into the pack shape, converting
// marker id references to positional indices. Attempt history is not part
// of a pack.
func Flatten(c *cockpit.Cockpit, lists []*checklist.Checklist) (*File, error) {
	indexByID := make(map[string]int)
	instruments := make([]Instrument, 0, c.Markers.Len())
	for i, m := range c.Markers.All() {
		indexByID[m.ID] = i
		instruments = append(instruments, Instrument{
			Name:        m.Name,
			Description: m.Description,
			X:           m.PixelX,
			Y:           m.PixelY,
		})
	}

	checklists := make([]Checklist, 0, len(lists))
	for _, cl := range lists {
		pc := Checklist{Name: cl.Name}
		for _, it := range cl.Items() {
			idx, ok := indexByID[it.MarkerID]
			if !ok {
				return nil, fmt.Errorf("%w: marker %s in checklist %q",
					ErrBadReference, it.MarkerID, cl.Name)
			}
			pc.Items = append(pc.Items, Item{
				Description:     it.Description,
				Order:           it.Order,
				InstrumentIndex: idx,
			})
		}
		checklists = append(checklists, pc)
	}

	return &File{
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		Type:         c.Type,
		Description:  c.Description,
		Media: []Media{{
			Link:   c.Panorama.Link,
			Type:   MediaTypePanorama,
			Width:  c.Panorama.Width,
			Height: c.Panorama.Height,
		}},
		Instruments: instruments,
		Checklists:  checklists,
	}, nil
}
