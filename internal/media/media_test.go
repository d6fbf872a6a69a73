package media

import "testing"

func TestClassify_Images(t *testing.T) {
	for _, name := range []string{"photo.jpg", "scan.jpeg", "chart.png", "anim.gif", "old.bmp", "page.tiff", "modern.webp"} {
		if kind := Classify(name); kind != KindImage {
			t.Errorf("Classify(%q) = %q, want %q", name, kind, KindImage)
		}
	}
}

func TestClassify_Audio(t *testing.T) {
	for _, name := range []string{"voice.mp3", "raw.wav", "clip.aac", "master.flac", "free.ogg", "memo.m4a"} {
		if kind := Classify(name); kind != KindAudio {
			t.Errorf("Classify(%q) = %q, want %q", name, kind, KindAudio)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if kind := Classify("photo.JPG"); kind != KindImage {
		t.Errorf("Classify(photo.JPG) = %q, want %q", kind, KindImage)
	}
	if kind := Classify("VOICE.Mp3"); kind != KindAudio {
		t.Errorf("Classify(VOICE.Mp3) = %q, want %q", kind, KindAudio)
	}
}

func TestClassify_Unsupported(t *testing.T) {
	for _, name := range []string{"document.pdf", "archive.zip", "noextension", "", "video.mp4", "trailing."} {
		if kind := Classify(name); kind != KindUnsupported {
			t.Errorf("Classify(%q) = %q, want %q", name, kind, KindUnsupported)
		}
	}
}

func TestClassify_MultipleDots(t *testing.T) {
	if kind := Classify("holiday.2024.jpeg"); kind != KindImage {
		t.Errorf("Classify(holiday.2024.jpeg) = %q, want %q", kind, KindImage)
	}
}
