package routepath

import "testing"

func TestPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{method: "GET", path: Home, want: "GET /{locale}/{$}"},
		{method: "GET", path: Projects, want: "GET /{locale}/projects"},
		{method: "GET", path: ProjectPattern, want: "GET /{locale}/projects/{slug}"},
		{method: "POST", path: Login, want: "POST /{locale}/auth/login"},
		{method: "", path: AdminRoot, want: "/{locale}/admin"},
	}
	for _, tc := range tests {
		if got := Pattern(tc.method, tc.path); got != tc.want {
			t.Fatalf("Pattern(%q, %q) = %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
	if got := Prefix(AdminPrefix); got != "/{locale}/admin/" {
		t.Fatalf("Prefix = %q", got)
	}
}

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		Project("hello-world"):       "/projects/hello-world",
		Project(" a b "):             "/projects/a%20b",
		AdminProjectEdit("p1"):       "/admin/projects/p1/edit",
		AdminProjectDelete("p1"):     "/admin/projects/p1/delete",
		AdminExperience("e1"):        "/admin/experiences/e1",
		AdminExperienceEdit("e1"):    "/admin/experiences/e1/edit",
		AdminExperienceDelete("e1"):  "/admin/experiences/e1/delete",
		AdminSkillEdit("s1"):         "/admin/skills/s1/edit",
		AdminSkillDelete("s1"):       "/admin/skills/s1/delete",
		LoginWithNext("/km/admin/"):  "/auth/login?next=%2Fkm%2Fadmin%2F",
		LoginWithNext("https://x.y"): "/auth/login",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestSafeNext(t *testing.T) {
	t.Parallel()

	for _, unsafe := range []string{"", "admin", "//evil.test", `/\evil.test`, "https://evil.test/"} {
		if got := SafeNext(unsafe); got != "" {
			t.Fatalf("SafeNext(%q) = %q", unsafe, got)
		}
	}
	if got := SafeNext(" /admin/projects "); got != "/admin/projects" {
		t.Fatalf("SafeNext trimmed = %q", got)
	}
}
