package pubsub

import "testing"

func TestSubscriptionResourceName(t *testing.T) {
	client := &Client{projectID: "inspectai-prod"}

	got := client.subscriptionResourceName("analysis-jobs")
	want := "projects/inspectai-prod/subscriptions/analysis-jobs"
	if got != want {
		t.Fatalf("resource name = %s, want %s", got, want)
	}
}

func TestSubscriptionResourceNamePassthrough(t *testing.T) {
	client := &Client{projectID: "inspectai-prod"}

	full := "projects/other/subscriptions/analysis-jobs"
	if got := client.subscriptionResourceName(full); got != full {
		t.Fatalf("resource name = %s, want passthrough", got)
	}
}

func TestTopicResourceName(t *testing.T) {
	client := &Client{projectID: "inspectai-prod"}

	got := client.topicResourceName("analysis-jobs")
	want := "projects/inspectai-prod/topics/analysis-jobs"
	if got != want {
		t.Fatalf("resource name = %s, want %s", got, want)
	}
}

func TestResourceNamesRequireProject(t *testing.T) {
	client := &Client{}
	if got := client.subscriptionResourceName("analysis-jobs"); got != "" {
		t.Fatalf("expected empty name, got %s", got)
	}
	if got := client.topicResourceName("analysis-jobs"); got != "" {
		t.Fatalf("expected empty name, got %s", got)
	}
}
