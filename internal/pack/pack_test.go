package pack

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const samplePack = `{
  "name": "Cessna 172",
  "manufacturer": "Cessna",
  "model": "172S",
  "type": "single-prop",
  "description": "primary trainer",
  "media": [
    {"link": "pano.jpg", "type": "PANORAMA", "width": 4096, "height": 2048}
  ],
  "instruments": [
    {"name": "Altimeter", "description": "indicates altitude", "x": 1000, "y": 800},
    {"name": "Airspeed indicator", "x": 1400, "y": 820}
  ],
  "checklists": [
    {
      "name": "before takeoff",
      "items": [
        {"description": "set altimeter", "order": 10, "instrumentIndex": 0},
        {"description": "check airspeed", "order": 20, "instrumentIndex": 1}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Name != "Cessna 172" || len(f.Instruments) != 2 || len(f.Checklists) != 1 {
		t.Errorf("decoded pack = %+v", f)
	}
	if f.Media[0].Width != 4096 || f.Media[0].Height != 2048 {
		t.Errorf("panorama dims = %dx%d", f.Media[0].Width, f.Media[0].Height)
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"not JSON":       `{`,
		"missing name":   `{"media":[{"link":"p.jpg","type":"PANORAMA","width":1,"height":1}],"instruments":[]}`,
		"unknown field":  `{"name":"x","pilot":"me","media":[{"link":"p.jpg","type":"PANORAMA","width":1,"height":1}],"instruments":[]}`,
		"negative pixel": `{"name":"x","media":[{"link":"p.jpg","type":"PANORAMA","width":1,"height":1}],"instruments":[{"name":"a","x":-1,"y":0}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(raw)); err == nil {
				t.Error("Decode accepted invalid pack")
			}
		})
	}
}

func TestDecodeRejectsBadInstrumentIndex(t *testing.T) {
	raw := `{
	  "name": "x",
	  "media": [{"link": "p.jpg", "type": "PANORAMA", "width": 10, "height": 5}],
	  "instruments": [{"name": "a", "x": 0, "y": 0}],
	  "checklists": [{"name": "c", "items": [{"description": "d", "instrumentIndex": 3}]}]
	}`
	_, err := Decode(strings.NewReader(raw))
	if !errors.Is(err, ErrBadReference) {
		t.Errorf("err = %v, want ErrBadReference", err)
	}
}

func TestDecodeRequiresPanorama(t *testing.T) {
	raw := `{
	  "name": "x",
	  "media": [{"link": "thumb.jpg", "type": "THUMBNAIL"}],
	  "instruments": []
	}`
	if _, err := Decode(strings.NewReader(raw)); err == nil {
		t.Error("Decode accepted pack without panorama media")
	}
}

func TestBuildAndFlattenRoundTrip(t *testing.T) {
	f, err := Decode(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	c, lists, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Markers.Len() != 2 {
		t.Fatalf("marker count = %d, want 2", c.Markers.Len())
	}
	if len(lists) != 1 || lists[0].Len() != 2 {
		t.Fatalf("checklists = %+v", lists)
	}
	// Item marker links resolve to the instruments in pack order.
	items := lists[0].Items()
	markers := c.Markers.All()
	if items[0].MarkerID != markers[0].ID || items[1].MarkerID != markers[1].ID {
		t.Error("item marker links do not follow instrumentIndex")
	}
	if items[0].Order != 10 || items[1].Order != 20 {
		t.Errorf("orders = %d, %d, want 10, 20", items[0].Order, items[1].Order)
	}

	back, err := Flatten(c, lists)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if back.Name != f.Name || len(back.Instruments) != 2 {
		t.Errorf("flattened pack = %+v", back)
	}
	if back.Checklists[0].Items[0].InstrumentIndex != 0 ||
		back.Checklists[0].Items[1].InstrumentIndex != 1 {
		t.Error("flatten did not restore positional indices")
	}

	// Re-encoded output must validate again.
	var buf bytes.Buffer
	if err := Encode(&buf, back); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf); err != nil {
		t.Errorf("re-decode: %v", err)
	}
}
