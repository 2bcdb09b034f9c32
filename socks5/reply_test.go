package socks5

import "testing"

// TestReplyErrorTotality verifies that every REP byte maps to either
// success (nil) or exactly one error.
func TestReplyErrorTotality(t *testing.T) {
	for code := 0; code <= 0xff; code++ {
		err := replyError(byte(code))
		if code == repSuccess {
			if err != nil {
				t.Errorf("replyError(0x%02x) = %v, want nil", code, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("replyError(0x%02x) = nil, want an error", code)
		}
		var re *ReplyError
		if re, _ = err.(*ReplyError); re == nil {
			t.Errorf("replyError(0x%02x) = %T, want *ReplyError", code, err)
		} else if re.Code != byte(code) {
			t.Errorf("replyError(0x%02x).Code = 0x%02x", code, re.Code)
		}
	}
}

func TestReplyErrorUnknownCode(t *testing.T) {
	err := replyError(0x7f)
	re, ok := err.(*ReplyError)
	if !ok {
		t.Fatalf("err = %T, want *ReplyError", err)
	}
	if re.Kind != nil {
		t.Errorf("Kind = %v, want nil for an unrecognized code", re.Kind)
	}
}
