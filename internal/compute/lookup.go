package compute

// Lookup is the result of resolving a catalog entry by name.
type Lookup[T any] struct {
	Name  string
	Value T
	Found bool
}

// FindHardware searches profiles for an exact name match. When several
// profiles share the name, the one located at locationID (or in a zone of that
// region) is preferred.
func FindHardware(profiles []Hardware, name, locationID string) Lookup[Hardware] {
	result := Lookup[Hardware]{Name: name}
	for _, p := range profiles {
		if p.Name != name {
			continue
		}
		if inLocation(p.Location, locationID) {
			return Lookup[Hardware]{Name: name, Value: p, Found: true}
		}
		if !result.Found {
			result.Value = p
			result.Found = true
		}
	}
	return result
}

// FindImage searches images for an exact name match.
func FindImage(images []Image, name string) Lookup[Image] {
	for _, img := range images {
		if img.Name == name {
			return Lookup[Image]{Name: name, Value: img, Found: true}
		}
	}
	return Lookup[Image]{Name: name}
}

func inLocation(loc *Location, id string) bool {
	if id == "" {
		return false
	}
	for l := loc; l != nil; l = l.Parent {
		if l.ID == id {
			return true
		}
	}
	return false
}
