package codec

import "strings"

// FormPair is a single decoded application/x-www-form-urlencoded entry.
type FormPair struct {
	Name  string
	Value string
}

// FormParse implements the application/x-www-form-urlencoded parser: split
// on '&', drop empty chunks, split each on the first '=', replace '+' with
// space in both halves, then percent-decode and UTF-8-decode each half.
func FormParse(s string) []FormPair {
	if s == "" {
		return nil
	}
	chunks := strings.Split(s, "&")
	pairs := make([]FormPair, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}
		var name, value string
		if i := strings.IndexByte(chunk, '='); i >= 0 {
			name, value = chunk[:i], chunk[i+1:]
		} else {
			name, value = chunk, ""
		}
		pairs = append(pairs, FormPair{
			Name:  formDecodeHalf(name),
			Value: formDecodeHalf(value),
		})
	}
	return pairs
}

func formDecodeHalf(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	return PercentDecodeString(s)
}

// FormSerialize renders pairs back to application/x-www-form-urlencoded
// bytes: U+0020 becomes '+', everything else follows
// FormURLEncodedPercentEncodeSet, joined with '&' and '='.
func FormSerialize(pairs []FormPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(PercentEncodeString(p.Name, FormURLEncodedPercentEncodeSet, true))
		b.WriteByte('=')
		b.WriteString(PercentEncodeString(p.Value, FormURLEncodedPercentEncodeSet, true))
	}
	return b.String()
}
