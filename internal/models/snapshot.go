package models

// ScheduleSnapshot is the opaque payload of the last schedule notification
// sent, kept only so the notification layer can detect schedule changes.
// The store never interprets its shape. Values are expected to be JSON-shaped
// (map[string]any, []any and scalars), which is what both the image decoder
// and the embedding caller produce.
type ScheduleSnapshot map[string]any

// DeepCopy returns a structurally independent copy of the snapshot. Mutating
// the result (at any nesting depth) never affects the receiver.
func (s ScheduleSnapshot) DeepCopy() ScheduleSnapshot {
	out := make(ScheduleSnapshot, len(s))
	for k, v := range s {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case ScheduleSnapshot:
		return val.DeepCopy()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = deepCopyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = deepCopyValue(inner)
		}
		return out
	default:
		// Scalars (and nil) copy by value.
		return v
	}
}
