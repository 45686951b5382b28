package ffprobe

import "testing"

const sampleOutput = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "vorbis",
      "codec_type": "audio",
      "sample_rate": "44100",
      "channels": 2,
      "bit_rate": "192000"
    }
  ],
  "format": {
    "filename": "song.ogg",
    "nb_streams": 1,
    "format_name": "ogg",
    "duration": "2838.400000",
    "size": "68141394",
    "bit_rate": "192044"
  }
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatal(err)
	}
	if got := result.DurationSeconds(); got != 2838.4 {
		t.Fatalf("duration: got %v", got)
	}
	if got := result.SampleRate(); got != 44100 {
		t.Fatalf("sample rate: got %d", got)
	}
	if got := result.CodecName(); got != "vorbis" {
		t.Fatalf("codec: got %q", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("audio streams: got %d", got)
	}
	if got := result.SizeBytes(); got != 68141394 {
		t.Fatalf("size: got %d", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestZeroValuesWhenMissing(t *testing.T) {
	result, err := Parse([]byte(`{"streams": [], "format": {}}`))
	if err != nil {
		t.Fatal(err)
	}
	if result.DurationSeconds() != 0 || result.SampleRate() != 0 || result.CodecName() != "" {
		t.Fatalf("missing fields must zero out: %+v", result)
	}
	if _, ok := result.FirstAudioStream(); ok {
		t.Fatal("no audio stream expected")
	}
}
