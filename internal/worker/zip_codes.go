package worker

// AddZipCodes appends ZIP codes to the scan list, skipping duplicates.
func (s *ZipScanner) AddZipCodes(zips ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, zip := range zips {
		exists := false
		for _, existing := range s.zipCodes {
			if existing == zip {
				exists = true
				break
			}
		}
		if !exists {
			s.zipCodes = append(s.zipCodes, zip)
		}
	}
}

// RemoveZipCode drops a ZIP code from the scan list, preserving order.
func (s *ZipScanner) RemoveZipCode(zip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.zipCodes {
		if existing == zip {
			s.zipCodes = append(s.zipCodes[:i], s.zipCodes[i+1:]...)
			return
		}
	}
}

// SetZipCodes replaces the whole scan list.
func (s *ZipScanner) SetZipCodes(zips []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(zips) == 0 {
		s.zipCodes = nil
		return
	}

	s.zipCodes = make([]string, len(zips))
	copy(s.zipCodes, zips)
}

// ZipCodes returns a copy of the current scan list.
func (s *ZipScanner) ZipCodes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.zipCodes) == 0 {
		return nil
	}

	result := make([]string, len(s.zipCodes))
	copy(result, s.zipCodes)
	return result
}
