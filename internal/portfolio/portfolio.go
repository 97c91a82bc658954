// Package portfolio holds the static site content: profile, sections,
// skills and projects.
package portfolio

import "slices"

type Section struct {
	ID    string
	Title string
	Nav   string
}

// Sections in page order.
var Sections = []Section{
	{ID: "hero", Title: "Jomin K Mathew", Nav: "Home"},
	{ID: "about", Title: "About Me", Nav: "About"},
	{ID: "experience", Title: "Experience", Nav: "Work"},
	{ID: "skills", Title: "Tech Stack", Nav: "Skills"},
	{ID: "projects", Title: "Projects", Nav: "Projects"},
	{ID: "playground", Title: "Live Systems", Nav: "Live"},
	{ID: "contact", Title: "Contact", Nav: "Contact"},
}

// SectionIDs lists section ids in page order.
func SectionIDs() []string {
	ids := make([]string, len(Sections))
	for i, s := range Sections {
		ids[i] = s.ID
	}
	return ids
}

// IndexOf returns the position of section id, or -1.
func IndexOf(id string) int {
	return slices.IndexFunc(Sections, func(s Section) bool { return s.ID == id })
}

type Profile struct {
	Name     string
	Role     string
	Company  string
	Summary  string
	Email    string
	Phone    string
	GitHub   string
	Location string
}

var Me = Profile{
	Name:     "Jomin K Mathew",
	Role:     "Full Stack Software Engineer",
	Company:  "SunTec Business Solutions",
	Summary:  "3+ years in Java, Spring Boot, React.js, Docker & CI/CD.",
	Email:    "jominmathewk@gmail.com",
	Phone:    "+91 7558805897",
	GitHub:   "github.com/jominkmathew",
	Location: "Trivandrum, Kerala",
}

// Titles cycled by the hero typewriter.
var Titles = []string{
	"mvn clean install -DskipTests",
	"docker-compose up -d --build",
	"git push origin feature/payment-api",
	"npm start  // React dev server",
	"curl -X POST /api/v1/payments",
	"SELECT * FROM transactions WHERE status='ACTIVE'",
	"java -jar suntec-api-1.0.jar",
	"kubectl get pods --namespace=prod",
	"jenkins build #142: SUCCESS ✓",
	`echo "Full Stack Software Engineer"`,
}

type Skill struct {
	Name    string
	Percent int
}

var Skills = []Skill{
	{"Java", 90},
	{"React", 85},
	{"REST API", 88},
	{"Docker", 78},
	{"Oracle", 80},
}

type Job struct {
	Title   string
	Company string
	Period  string
	Points  []string
}

var Experience = []Job{
	{
		Title:   "Full Stack Software Engineer",
		Company: "SunTec Business Solutions, Trivandrum",
		Period:  "2021 - Present",
		Points: []string{
			"Built payment REST APIs with Java and Spring Boot for banking clients",
			"Migrated legacy Struts actions to Spring controllers",
			"Delivered React.js product configuration screens backed by Redux",
			"Automated builds with Jenkins, Docker and SonarQube quality gates",
		},
	},
}

type Project struct {
	Name  string
	Front string
	Back  string
	Stack []string
}

var Projects = []Project{
	{
		Name:  "Payment API Development",
		Front: "Multi-currency payment processing APIs.",
		Back:  "Spring Boot services with validation, settlement and JWT refresh rotation.",
		Stack: []string{"Java", "Spring Boot", "Oracle"},
	},
	{
		Name:  "React UI Components",
		Front: "Reusable product configuration components.",
		Back:  "Hooks, context and Redux state wired to REST backends.",
		Stack: []string{"React", "Redux", "REST"},
	},
	{
		Name:  "Struts → Spring Migration",
		Front: "Legacy action classes moved to Spring MVC.",
		Back:  "Incremental migration keeping the JBoss deployment running throughout.",
		Stack: []string{"Struts", "Spring MVC", "JBoss EAP"},
	},
	{
		Name:  "Jasper Reports Integration",
		Front: "PDF report generation endpoints.",
		Back:  "Jasper templates rendered on demand with a report cache table.",
		Stack: []string{"JasperReports", "Java", "Oracle"},
	},
	{
		Name:  "Full Product Migration",
		Front: "Platform move to WildFly and Docker.",
		Back:  "Containerized deployment with Jenkins pipelines and datasource tuning.",
		Stack: []string{"Docker", "Jenkins", "WildFly"},
	},
}

var About = []string{
	"I build enterprise-grade banking and fintech software end to end:",
	"Spring Boot services on the back, React.js on the front, Docker and",
	"Jenkins in between. I like clean APIs, fast feedback loops and",
	"interfaces that feel alive.",
}
