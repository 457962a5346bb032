package mapping

import "strings"

// BO4E is a JSON-shaped domain document. Entities are generated per-PID
// by the out-of-band code generator, so this package has no static Go
// type for them; it only knows the generic merge/injection rules that
// apply to any such document.
type BO4E = map[string]any

// setPath writes value into obj at the dotted target path, creating
// nested objects as needed.
func setPath(obj BO4E, target string, value any) {
	parts := strings.Split(target, ".")
	cur := obj
	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = value
			return
		}
		next, ok := cur[part].(BO4E)
		if !ok {
			next = BO4E{}
			cur[part] = next
		}
		cur = next
	}
}

// getPath reads the value at the dotted source path, if present.
func getPath(obj BO4E, target string) (any, bool) {
	parts := strings.Split(target, ".")
	cur := any(obj)
	for _, part := range parts {
		m, ok := cur.(BO4E)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// deepMerge merges src into dst in place, existing values in dst
// winning on conflict. Nested objects recurse; arrays and scalars are
// left intact once present in dst.
func deepMerge(dst, src BO4E) {
	for k, sv := range src {
		dv, exists := dst[k]
		if !exists {
			dst[k] = sv
			continue
		}
		dm, dIsMap := dv.(BO4E)
		sm, sIsMap := sv.(BO4E)
		if dIsMap && sIsMap {
			deepMerge(dm, sm)
		}
		// else: dst already has a scalar/array value here, existing wins.
	}
}

// injectMetadata sets boTyp/versionStruktur on obj unless already
// present.
func injectMetadata(obj BO4E, bo4eType string) {
	if _, ok := obj["boTyp"]; !ok && bo4eType != "" {
		obj["boTyp"] = strings.ToUpper(bo4eType)
	}
	if _, ok := obj["versionStruktur"]; !ok {
		obj["versionStruktur"] = "1"
	}
}
