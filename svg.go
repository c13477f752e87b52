package glyphsvg

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// DrawingInstructionParser allows getting the drawing instructions
// described by an element. All SVG elements of this package implement
// this interface.
type DrawingInstructionParser interface {
	ParseDrawingInstructions() ([]DrawingInstruction, error)
}

// Svg represents an SVG document holding glyph paths, either directly or
// inside groups.
type Svg struct {
	Title    string
	ViewBox  string
	Width    string
	Height   string
	Groups   []Group
	Elements []DrawingInstructionParser
	Name     string
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID              string
	Stroke          string
	StrokeWidth     float64
	Fill            string
	FillRule        string
	TransformString string
	Elements        []DrawingInstructionParser
	Parent          *Group
}

// Path is an SVG XML path element
type Path struct {
	ID              string  `xml:"id,attr,omitempty"`
	D               string  `xml:"d,attr"`
	Style           string  `xml:"style,attr,omitempty"`
	TransformString string  `xml:"transform,attr,omitempty"`
	StrokeWidth     float64 `xml:"stroke-width,attr,omitempty"`
	Fill            string  `xml:"fill,attr,omitempty"`
	Stroke          string  `xml:"stroke,attr,omitempty"`
}

// NewSvg returns an empty document. viewBox is written verbatim, e.g.
// "0 -800 1000 1000" for a glyph in font units.
func NewSvg(name, viewBox string) *Svg {
	return &Svg{Name: name, ViewBox: viewBox}
}

// NewPath returns a path element whose d attribute is the serialized
// form of instrs.
func NewPath(id string, instrs []DrawingInstruction) *Path {
	return &Path{ID: id, D: Serialize(instrs)}
}

// AddElement appends elements to the top level of the document.
func (s *Svg) AddElement(elements ...DrawingInstructionParser) {
	s.Elements = append(s.Elements, elements...)
}

// ParseDrawingInstructions implements the DrawingInstructionParser
// interface by reading the path's d attribute.
func (p *Path) ParseDrawingInstructions() ([]DrawingInstruction, error) {
	instrs, err := ParsePathData(p.D)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}
	return instrs, nil
}

// ParseDrawingInstructions implements the DrawingInstructionParser
// interface. Instructions of all child elements are concatenated in
// document order.
func (g *Group) ParseDrawingInstructions() ([]DrawingInstruction, error) {
	return collectInstructions(g.Elements)
}

// ParseDrawingInstructions implements the DrawingInstructionParser
// interface. Top level elements come first, then groups.
func (s *Svg) ParseDrawingInstructions() ([]DrawingInstruction, error) {
	instrs, err := collectInstructions(s.Elements)
	if err != nil {
		return nil, err
	}
	for i := range s.Groups {
		gi, err := s.Groups[i].ParseDrawingInstructions()
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, gi...)
	}
	return instrs, nil
}

func collectInstructions(elements []DrawingInstructionParser) ([]DrawingInstruction, error) {
	instrs := []DrawingInstruction{}
	for _, e := range elements {
		ei, err := e.ParseDrawingInstructions()
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, ei...)
	}
	return instrs, nil
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "stroke":
			g.Stroke = attr.Value
		case "stroke-width":
			sw, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return fmt.Errorf("group %q: bad stroke-width: %w", g.ID, err)
			}
			g.StrokeWidth = sw
		case "fill":
			g.Fill = attr.Value
		case "fill-rule":
			g.FillRule = attr.Value
		case "transform":
			g.TransformString = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			var elementStruct DrawingInstructionParser

			switch tok.Name.Local {
			case "g":
				elementStruct = &Group{Parent: g}
			case "path":
				elementStruct = &Path{StrokeWidth: g.StrokeWidth, Stroke: g.Stroke, Fill: g.Fill}
			default:
				if err = decoder.Skip(); err != nil {
					return err
				}
				continue
			}

			if err = decoder.DecodeElement(elementStruct, &tok); err != nil {
				return fmt.Errorf("error decoding element of Group: %w", err)
			}
			g.Elements = append(g.Elements, elementStruct)

		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements the encoding.xml.Marshaler interface
func (g *Group) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "g"}
	start.Attr = appendAttr(start.Attr, "id", g.ID)
	start.Attr = appendAttr(start.Attr, "fill", g.Fill)
	start.Attr = appendAttr(start.Attr, "fill-rule", g.FillRule)
	start.Attr = appendAttr(start.Attr, "stroke", g.Stroke)
	if g.StrokeWidth != 0 {
		start.Attr = appendAttr(start.Attr, "stroke-width", strconv.FormatFloat(g.StrokeWidth, 'g', -1, 64))
	}
	start.Attr = appendAttr(start.Attr, "transform", g.TransformString)

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeElements(e, g.Elements); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "viewBox":
			s.ViewBox = attr.Value
		case "width":
			s.Width = attr.Value
		case "height":
			s.Height = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			var dip DrawingInstructionParser

			switch tok.Name.Local {
			case "title":
				if err = decoder.DecodeElement(&s.Title, &tok); err != nil {
					return fmt.Errorf("error decoding title of SVG struct: %w", err)
				}
				continue
			case "g":
				g := &Group{}
				if err = decoder.DecodeElement(g, &tok); err != nil {
					return fmt.Errorf("error decoding group element within SVG struct: %w", err)
				}
				s.Groups = append(s.Groups, *g)
				continue
			case "path":
				dip = &Path{}
			default:
				if err = decoder.Skip(); err != nil {
					return err
				}
				continue
			}

			if err = decoder.DecodeElement(dip, &tok); err != nil {
				return fmt.Errorf("error decoding element of SVG struct: %w", err)
			}

			s.Elements = append(s.Elements, dip)

		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements the encoding.xml.Marshaler interface
func (s *Svg) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "svg"}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: svgNamespace}}
	start.Attr = appendAttr(start.Attr, "viewBox", s.ViewBox)
	start.Attr = appendAttr(start.Attr, "width", s.Width)
	start.Attr = appendAttr(start.Attr, "height", s.Height)

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if s.Title != "" {
		if err := e.EncodeElement(s.Title, xml.StartElement{Name: xml.Name{Local: "title"}}); err != nil {
			return err
		}
	}
	if err := encodeElements(e, s.Elements); err != nil {
		return err
	}
	for i := range s.Groups {
		if err := e.Encode(&s.Groups[i]); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func encodeElements(e *xml.Encoder, elements []DrawingInstructionParser) error {
	for _, el := range elements {
		var err error
		switch el := el.(type) {
		case *Path:
			err = e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "path"}})
		case *Group:
			err = e.Encode(el)
		default:
			err = fmt.Errorf("cannot encode element of type %T", el)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func appendAttr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// WriteTo writes the document as indented XML. It implements io.WriterTo.
func (s *Svg) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return cw.n, fmt.Errorf("write svg %q: %w", s.Name, err)
	}
	if err := enc.Close(); err != nil {
		return cw.n, fmt.Errorf("write svg %q: %w", s.Name, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// ParseSvg parses an SVG string into an SVG struct
func ParseSvg(str string, name string) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string) (*Svg, error) {
	svg := &Svg{Name: name}
	if err := xml.NewDecoder(r).Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %w", err)
	}

	Logger().Debug("glyphsvg: parsed svg",
		slog.String("name", name),
		slog.Int("elements", len(svg.Elements)),
		slog.Int("groups", len(svg.Groups)))
	return svg, nil
}
