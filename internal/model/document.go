package model

// Document is a schemaless JSON object returned by the backend.
//
// The backend schema is not owned by this tool, so all field access is
// fail-soft: an absent or mistyped field yields the zero value instead of an
// error.
type Document map[string]interface{}

// Str returns the string value for key, or "" when absent or not a string.
func (d Document) Str(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int returns the integer value for key. JSON numbers decode as float64, so
// both are accepted.
func (d Document) Int(key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Float returns the float value for key, or 0 when absent or not a number.
func (d Document) Float(key string) float64 {
	f, _ := d[key].(float64)
	return f
}

// Bool returns the boolean value for key, or false when absent or not a bool.
func (d Document) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Doc returns the nested object for key, or an empty Document.
func (d Document) Doc(key string) Document {
	switch v := d[key].(type) {
	case map[string]interface{}:
		return Document(v)
	case Document:
		return v
	}
	return Document{}
}

// Docs returns the list of nested objects for key, or nil.
func (d Document) Docs(key string) []Document {
	items, ok := d[key].([]interface{})
	if !ok {
		return nil
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			docs = append(docs, Document(m))
		}
	}
	return docs
}

// Has returns true when key is present, whatever its value.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}
