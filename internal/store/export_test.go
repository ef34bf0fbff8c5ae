package store

// SetWriteFile replaces the function Update writes list files with.
func SetWriteFile(s *Store, fn func(path, content string) error) {
	s.writeFile = fn
}

// WriteAtomic is the default list writer.
var WriteAtomic = writeAtomic
