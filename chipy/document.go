package chipy

import "google.golang.org/protobuf/types/known/structpb"

// Document is the host-facing serialisation target value_to_document
// produces. It is a real, general-purpose structured-value type rather
// than a bespoke one: *structpb.Value, the protobuf well-known type for a
// JSON-like document, already covers exactly the subset spec §6 asks for
// (dict, list, string, integer).
type Document = structpb.Value

// ValueToDocument recursively serialises a Value into a Document.
// Dictionary becomes a Struct, List becomes a ListValue, String becomes a
// StringValue, Integer becomes a NumberValue. Every other variant fails
// with a type-error, matching "other variants fail" in spec §6.
func ValueToDocument(v Value) (*Document, error) {
	switch x := v.(type) {
	case String:
		return structpb.NewStringValue(string(x)), nil
	case Integer:
		return structpb.NewNumberValue(float64(x)), nil
	case *List:
		vals := make([]*structpb.Value, 0, x.Size())
		for _, e := range x.elems {
			d, err := ValueToDocument(e)
			if err != nil {
				return nil, err
			}
			vals = append(vals, d)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
	case *Dictionary:
		fields := make(map[string]*structpb.Value, x.Size())
		for _, k := range x.keys {
			d, err := ValueToDocument(x.vals[k])
			if err != nil {
				return nil, err
			}
			fields[k] = d
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	default:
		return nil, newError(TypeError, "value_to_document: unsupported variant %s", v.Type())
	}
}

// DocumentToValue is the inverse of ValueToDocument, used by the round-
// trip property in spec §8. It is a host-side convenience, not part of
// the normative Host API, but exercises the same Document type both ways.
func DocumentToValue(d *Document) (Value, error) {
	switch k := d.GetKind().(type) {
	case *structpb.Value_StringValue:
		return String(k.StringValue), nil
	case *structpb.Value_NumberValue:
		return Integer(int32(k.NumberValue)), nil
	case *structpb.Value_ListValue:
		elems := make([]Value, 0, len(k.ListValue.Values))
		for _, e := range k.ListValue.Values {
			v, err := DocumentToValue(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return NewList(elems), nil
	case *structpb.Value_StructValue:
		dict := NewDictionary()
		for key, e := range k.StructValue.Fields {
			v, err := DocumentToValue(e)
			if err != nil {
				return nil, err
			}
			dict.Insert(key, v)
		}
		return dict, nil
	default:
		return nil, newError(TypeError, "document_to_value: unsupported document kind")
	}
}
