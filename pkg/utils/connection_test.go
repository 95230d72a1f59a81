package utils

import (
	"testing"
)

func TestGetHostPort(t *testing.T) {
	h, p := GetHostPort("", 0)
	if !(h == "localhost" && p == 9200) {
		t.Fatalf("localhost, 9200 !=  %s, %d", h, p)
	}

	h, p = GetHostPort("127.0.0.1", 0)
	if !(h == "127.0.0.1" && p == 9200) {
		t.Fatalf("127.0.0.1, 9200 != %s, %d", h, p)
	}

	h, p = GetHostPort("127.0.0.1", 9201)
	if !(h == "127.0.0.1" && p == 9201) {
		t.Fatalf("127.0.0.1, 9201 != %s, %d", h, p)
	}

	h, p = GetHostPort("es-master:7000", 9201)
	if !(h == "es-master" && p == 7000) {
		t.Fatalf("es-master, 7000 != %s, %d", h, p)
	}

	h, p = GetHostPort(":9250", 0)
	if !(h == "localhost" && p == 9250) {
		t.Fatalf("localhost, 9250 != %s, %d", h, p)
	}

	h, p = GetHostPort("es-master:http", 0)
	if !(h == "es-master" && p == 9200) {
		t.Fatalf("es-master, 9200 != %s, %d", h, p)
	}

	h, p = GetHostPort("::1", 0)
	if !(h == "::1" && p == 9200) {
		t.Fatalf("::1, 9200 != %s, %d", h, p)
	}

	h, p = GetHostPort("[::1]", 0)
	if !(h == "::1" && p == 9200) {
		t.Fatalf("::1, 9200 != %s, %d", h, p)
	}

	h, p = GetHostPort("[fe80::1]:9250", 0)
	if !(h == "fe80::1" && p == 9250) {
		t.Fatalf("fe80::1, 9250 != %s, %d", h, p)
	}
}
