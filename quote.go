package re2

// QuoteMeta returns a pattern that matches the argument literally: every
// byte outside [A-Za-z0-9_] without the high bit set is escaped. Bytes with
// the high bit set pass through untouched so UTF-8 and Latin-1 sequences
// survive. A NUL byte becomes the four bytes \x00, because \0 followed by a
// digit would read as a longer escape.
//
//	re2.QuoteMeta("1.5-2.0?") // `1\.5\-2\.0\?`
func QuoteMeta(unquoted string) string {
	b := make([]byte, 0, 2*len(unquoted))
	for i := 0; i < len(unquoted); i++ {
		c := unquoted[i]
		if (c < 'a' || c > 'z') &&
			(c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') &&
			c != '_' &&
			c&0x80 == 0 {
			if c == 0 {
				b = append(b, `\x00`...)
				continue
			}
			b = append(b, '\\')
		}
		b = append(b, c)
	}
	return string(b)
}
