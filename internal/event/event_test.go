package event

import (
	"errors"
	"testing"
)

func TestDecodeValid(t *testing.T) {
	p, err := Decode([]byte(`{"message":{"from":"Ольга","message":"Добрый вечер!"}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.From != "Ольга" || p.Message != "Добрый вечер!" {
		t.Errorf("got %+v", p)
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	p, err := Decode([]byte(`{"type":"chat","message":{"from":"Иван","message":"hi","id":7}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.From != "Иван" {
		t.Errorf("From = %q, want Иван", p.From)
	}
}

func TestDecodeEmptyTextAllowed(t *testing.T) {
	p, err := Decode([]byte(`{"message":{"from":"Анна","message":""}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Message != "" {
		t.Errorf("Message = %q, want empty", p.Message)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{not json`},
		{"empty message object", `{"message":{}}`},
		{"no message key", `{"from":"Анна","message":"x"}`},
		{"message is a string", `{"message":"hello"}`},
		{"missing from", `{"message":{"message":"x"}}`},
		{"blank from", `{"message":{"from":"  ","message":"x"}}`},
		{"missing text", `{"message":{"from":"Анна"}}`},
		{"from wrong type", `{"message":{"from":5,"message":"x"}}`},
		{"array", `[]`},
		{"null", `null`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			if err == nil {
				t.Fatalf("Decode(%q) expected error", tt.raw)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}
		})
	}
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode(Payload{From: "Server", Message: "Добро пожаловать в чат!"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"message":{"from":"Server","message":"Добро пожаловать в чат!"}}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}
}
