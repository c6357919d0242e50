package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Profile describes how a provider's payload maps onto a Draft. Each draft
// field lists candidate payload keys in priority order; the first key with a
// non-empty value wins. Profiles ship embedded under profiles/ so a provider
// quirk is a data change, not a code change.
type Profile struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Fields      map[string][]string `yaml:"fields"`
	Creators    []string            `yaml:"creators"`
}

// LoadProfile reads an embedded mapping profile by name.
func LoadProfile(name string) (*Profile, error) {
	raw, err := profileFiles.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown lookup profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", name, err)
	}
	return &p, nil
}

// Apply maps a provider payload onto a Draft using the profile's candidate
// key chains.
func (p *Profile) Apply(payload *structpb.Struct) *Draft {
	d := &Draft{}
	if payload == nil {
		return d
	}

	get := func(field string) string {
		for _, key := range p.Fields[field] {
			if v, ok := payload.Fields[key]; ok {
				if s := scalarString(v); s != "" {
					return s
				}
			}
		}
		return ""
	}

	d.Title = get("title")
	d.Publisher = get("publisher")
	d.PublisherLocation = get("publisherLocation")
	d.Journal = get("journal")
	d.Volume = get("volume")
	d.Issue = get("issue")
	d.Pages = get("pages")
	d.ISBN = get("isbn")
	d.DOI = get("doi")
	d.Link = get("link")
	d.Year = leadingYear(get("year"))
	d.Creators = p.creators(payload)
	return d
}

func (p *Profile) creators(payload *structpb.Struct) []Creator {
	for _, key := range p.Creators {
		v, ok := payload.Fields[key]
		if !ok {
			continue
		}
		list := v.GetListValue()
		if list == nil {
			if s := scalarString(v); s != "" {
				return []Creator{{Name: s}}
			}
			continue
		}
		var creators []Creator
		for _, item := range list.Values {
			if st := item.GetStructValue(); st != nil {
				c := Creator{
					Name:    scalarString(st.Fields["name"]),
					Reading: scalarString(st.Fields["reading"]),
				}
				if c.Name != "" {
					creators = append(creators, c)
				}
				continue
			}
			if s := scalarString(item); s != "" {
				creators = append(creators, Creator{Name: s})
			}
		}
		if len(creators) > 0 {
			return creators
		}
	}
	return nil
}

func scalarString(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return strings.TrimSpace(v.GetStringValue())
	case *structpb.Value_NumberValue:
		n := v.GetNumberValue()
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// leadingYear pulls the leading digit run out of a date string, so both
// "1997" and "1997-03-01" yield 1997.
func leadingYear(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}
