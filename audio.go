package vtrack

type (
	// AudioSource renders the next len(buf) frames into buf each time it is
	// called.
	AudioSource interface {
		ReadAudio(buf AudioBuffer) error
	}

	// AudioContext is a sound card that plays AudioSources.
	AudioContext interface {
		Play(source AudioSource) AudioOutput
		Suspend() error
	}

	AudioOutput interface {
		Err() error
		Close() error
	}
)
