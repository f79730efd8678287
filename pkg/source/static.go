package source

import "os"

// loadStatic reads path and parses it as one update message.
// Failures are logged and reported as a missing message; the caller keeps
// waiting for the next change notification instead of retrying.
func (s *Source) loadStatic(gen string) (*Message, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Errorw("Failed to read config file",
			"path", s.path,
			"generation", gen,
			"error", err,
		)
		return nil, false
	}

	msg, err := ParseMessage(data)
	if err != nil {
		s.log.Errorw("Failed to parse config file",
			"path", s.path,
			"generation", gen,
			"error", err,
			"config", string(data),
		)
		return nil, false
	}

	return msg, true
}
