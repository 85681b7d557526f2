package domain

import "testing"

func TestTableNames(t *testing.T) {
	if got := (ResumeRequest{}).TableName(); got != "resume_requests" {
		t.Fatalf("ResumeRequest table = %q", got)
	}
	if got := (UserMessage{}).TableName(); got != "user_messages" {
		t.Fatalf("UserMessage table = %q", got)
	}
}
