package argon2kdf

import "testing"

func BenchmarkHasher_Hash(b *testing.B) {
	hasher := NewHasher()
	password := []byte("correct horse battery staple")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := hasher.Hash(password); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHash_Verify(b *testing.B) {
	password := []byte("correct horse battery staple")
	hash, err := NewHasher().Hash(password)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hash.Verify(password); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHasher_HashPrimitive(b *testing.B) {
	hasher := NewHasher().WithAlgorithm(Argon2d)
	password := []byte("correct horse battery staple")

	for i := 0; i < b.N; i++ {
		if _, err := hasher.Hash(password); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseHash(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseHash(exampleRecord); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHash_String(b *testing.B) {
	hash, err := ParseHash(exampleRecord)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hash.String()
	}
}
