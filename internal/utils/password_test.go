package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
    hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
    if err != nil {
        t.Fatal(err)
    }
    if hash == "s3cret" {
        t.Fatal("hash must not equal the plain password")
    }
    if !VerifyPassword(hash, "s3cret") {
        t.Error("correct password rejected")
    }
    if VerifyPassword(hash, "wrong") {
        t.Error("wrong password accepted")
    }
}
