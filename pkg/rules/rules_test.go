package rules

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizerNormalize(t *testing.T) {
	tests := []struct {
		name   string
		n      Normalizer
		raw    string
		expect string
	}{
		{
			name:   "strips root and suffix",
			n:      Normalizer{Root: "/src/stdlib", Suffix: ".puml"},
			raw:    "/src/stdlib/awslib14/Compute/EC2.puml",
			expect: "awslib14/Compute/EC2",
		},
		{
			name:   "root with trailing slash",
			n:      Normalizer{Root: "/src/stdlib/", Suffix: ".puml"},
			raw:    "/src/stdlib/k8s/OSS/pod.puml",
			expect: "k8s/OSS/pod",
		},
		{
			name:   "backslash separators",
			n:      Normalizer{Root: `C:\stdlib`, Suffix: ".puml"},
			raw:    `C:\stdlib\azure\Compute\AzureVM.puml`,
			expect: "azure/Compute/AzureVM",
		},
		{
			name:   "compound suffix",
			n:      Normalizer{Suffix: "-sprite.puml"},
			raw:    "elastic/kibana/kibana-sprite.puml",
			expect: "elastic/kibana/kibana",
		},
		{
			name:   "missing suffix leaves path",
			n:      Normalizer{Suffix: ".puml"},
			raw:    "/logos/docker.svg",
			expect: "logos/docker.svg",
		},
		{
			name:   "root is not a partial directory match",
			n:      Normalizer{Root: "/std", Suffix: ".puml"},
			raw:    "/stdlib/osa/user.puml",
			expect: "stdlib/osa/user",
		},
		{
			name:   "relative root is cleaned",
			n:      Normalizer{Root: "./stdlib/", Suffix: ".puml"},
			raw:    "stdlib/logos/go.puml",
			expect: "logos/go",
		},
		{
			name:   "repeated suffix",
			n:      Normalizer{Suffix: ".puml"},
			raw:    "logos/x.puml.puml",
			expect: "logos/x",
		},
		{
			name:   "folder named like the root",
			n:      Normalizer{Root: "stdlib", Suffix: ".puml"},
			raw:    "stdlib/stdlib/logos/x.puml",
			expect: "logos/x",
		},
		{
			name:   "duplicate separators collapse",
			n:      Normalizer{Suffix: ".puml"},
			raw:    "gcp//Compute/GKE.puml",
			expect: "gcp/Compute/GKE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.n.Normalize(tt.raw)
			if got != tt.expect {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expect)
			}
			if again := tt.n.Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		path, folder, want string
	}{
		{"awslib14/Compute/EC2", "awslib14", "Compute"},
		{"Compute/EC2/EC2", "", "Compute"},
		{"material/account_box", "material", "account_box"},
		{"awslib14", "awslib14", ""},
		{"gcp/AI/AutoML", "/gcp/", "AI"},
	}
	for _, tt := range tests {
		if got := Category(tt.path, tt.folder); got != tt.want {
			t.Errorf("Category(%q, %q) = %q, want %q", tt.path, tt.folder, got, tt.want)
		}
	}
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName("tupadr3/font_awesome_5/server"); got != "tupadr3-font-awesome-5-server" {
		t.Errorf("DefaultName() = %q", got)
	}
}

func TestDedupName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a-a-b-a-c", "a-b-c"},
		{"elastic/kibana/kibana", "elastic-kibana"},
		{"elastic/beats/beats_filebeat", "elastic-beats-filebeat"},
		{"x", "x"},
	}
	for _, tt := range tests {
		if got := DedupName(tt.input); got != tt.want {
			t.Errorf("DedupName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDedupNameKeepsFirstOccurrenceOrder(t *testing.T) {
	got := strings.Split(DedupName("a/a/b/a/c"), "-")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestStripName(t *testing.T) {
	aws := StripName("lib14")
	if got := aws("awslib14/Compute/EC2"); got != "aws-Compute-EC2" {
		t.Errorf("aws rule = %q", got)
	}
	k8s := StripName("OSS-")
	if got := k8s("k8s/OSS/pod"); got != "k8s-pod" {
		t.Errorf("k8s rule = %q", got)
	}
	if got := StripName("")("a/b"); got != "a-b" {
		t.Errorf("empty marker = %q", got)
	}
}

var testGroups = []Group{
	{Bucket: "smile", Color: "orange", Categories: []string{"Compute", "Containers"}},
	{Bucket: "endor", Color: "green", Categories: []string{"Storage"}},
}

func TestGroupedClassifier(t *testing.T) {
	g, err := NewGroupedClassifier(testGroups, "blue")
	if err != nil {
		t.Fatalf("NewGroupedClassifier: %v", err)
	}

	tests := []struct {
		category, bucket, color string
	}{
		{"Compute", "smile", "orange"},
		{"Containers", "smile", "orange"},
		{"Storage", "endor", "green"},
		{"Quantum", DefaultBucket, "blue"},
		{"", DefaultBucket, "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := g.Bucket(tt.category); got != tt.bucket {
					t.Errorf("Bucket(%q) = %q, want %q", tt.category, got, tt.bucket)
				}
				if got := g.Classifier()(tt.category); got != tt.color {
					t.Errorf("Color(%q) = %q, want %q", tt.category, got, tt.color)
				}
			}
		})
	}
	if g.Categories() != 3 {
		t.Errorf("Categories() = %d, want 3", g.Categories())
	}
}

func TestGroupedClassifierRejectsOverlap(t *testing.T) {
	groups := []Group{
		{Bucket: "a", Color: "1", Categories: []string{"Compute"}},
		{Bucket: "b", Color: "2", Categories: []string{"Compute"}},
	}
	if _, err := NewGroupedClassifier(groups, "x"); err == nil {
		t.Fatal("expected error for category in two buckets")
	}
	if _, err := NewGroupedClassifier([]Group{{Bucket: DefaultBucket}}, "x"); err == nil {
		t.Fatal("expected error for reserved bucket name")
	}
	if _, err := NewGroupedClassifier([]Group{{Bucket: "a"}, {Bucket: "a"}}, "x"); err == nil {
		t.Fatal("expected error for repeated bucket")
	}
}

func TestConstantColor(t *testing.T) {
	c := ConstantColor("#0072C6")
	for _, category := range []string{"Compute", "", "anything"} {
		if got := c(category); got != "#0072C6" {
			t.Errorf("ConstantColor(%q) = %q", category, got)
		}
	}
}

func TestPrefixReference(t *testing.T) {
	ref := PrefixReference("ma_")
	if got := ref("material/account_box"); got != "ma_account_box" {
		t.Errorf("reference = %q", got)
	}
	if got := ref("flat"); got != "ma_flat" {
		t.Errorf("reference without slash = %q", got)
	}
}
