// Package chat is the portfolio's keyword chat widget. Answers come from a
// static knowledge base: a direct keyword match first, then a fixed
// sequence of pattern fallbacks, then a generic reply.
package chat

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

type Rule int

const (
	RuleKeyword Rule = iota
	RulePattern
	RuleFallback
)

func (r Rule) String() string {
	switch r {
	case RuleKeyword:
		return "keyword"
	case RulePattern:
		return "pattern"
	}
	return "fallback"
}

type Entry struct {
	Key  string
	Text string
}

type Reply struct {
	Key  string
	Text string
	Rule Rule
}

type fallback struct {
	re  *regexp.Regexp
	key string
}

// Knowledge is the default knowledge base. Order matters: the first key
// found anywhere in the question wins.
var Knowledge = []Entry{
	{"skills", "Jomin's core skills include Java, Spring Boot, React.js, REST APIs, Jenkins, Docker, Git, MySQL, Oracle, JBoss EAP, MVC. He also works with JavaScript, HTML/CSS, and agile methodologies."},
	{"experience", "Jomin works as a Full Stack Software Engineer at SunTec Business Solutions, Trivandrum. He has 3+ years of experience building enterprise-grade banking & fintech applications."},
	{"projects", "Notable projects include: Xelerate Platform (enterprise pricing & billing for banks), REST API Microservices (Java/Spring Boot), and CI/CD Pipeline Automation (Jenkins + Docker). Check the Projects section for more!"},
	{"education", "Jomin holds an MCA (Master of Computer Applications) from TKM College of Engineering."},
	{"contact", "You can reach Jomin via email at jominachu001@gmail.com or connect on LinkedIn and GitHub. Use the Contact section to send a message directly!"},
	{"hello", "Hey there! 👋 Nice to meet you. I'm here to help you learn about Jomin. Try asking about his skills, experience, or projects!"},
	{"hi", "Hello! 👋 Ask me anything about Jomin — his tech stack, work experience, or how to reach him."},
	{"who", "Jomin K Mathew is a Full Stack Software Engineer specializing in Java, Spring Boot, React.js, and enterprise banking applications at SunTec Business Solutions."},
	{"java", "Jomin is highly proficient in Java (8+), including Spring Boot, Spring MVC, Hibernate/JPA, and enterprise patterns. It's his primary backend language."},
	{"react", "Jomin builds responsive UIs with React.js, including hooks, context API, component architecture, and integration with REST backends."},
	{"docker", "Jomin uses Docker for containerized deployments and Jenkins for CI/CD pipelines, ensuring smooth automated builds and releases."},
	{"resume", "You can download Jomin's resume from the hero section of this portfolio — look for the Download Resume button at the top!"},
	{"location", "Jomin is based in Trivandrum (Thiruvananthapuram), Kerala, India."},
	{"hobby", "When not coding, Jomin enjoys exploring new technologies, contributing to open-source, and staying up-to-date with the latest in software architecture."},
}

// FallbackText answers anything the knowledge base does not cover.
// Greeting opens every conversation.
const Greeting = "Hi! I'm Jomin's assistant. Ask me about skills, experience, projects or how to get in touch."

const FallbackText = "Hmm, I'm not sure about that. Try asking about Jomin's skills, experience, projects, education, or contact info!"

var fallbacks = []fallback{
	{regexp.MustCompile(`spring|boot|backend|back-end`), "java"},
	{regexp.MustCompile(`front.?end|ui|html|css|javascript`), "react"},
	{regexp.MustCompile(`work|job|company|suntec|banking`), "experience"},
	{regexp.MustCompile(`learn|degree|college|study|university`), "education"},
	{regexp.MustCompile(`reach|email|mail|linkedin|github|hire|connect`), "contact"},
	{regexp.MustCompile(`tech|stack|tool|language|framework`), "skills"},
	{regexp.MustCompile(`deploy|ci|cd|jenkins|pipeline|devops`), "docker"},
	{regexp.MustCompile(`live|where|city|india|based`), "location"},
	{regexp.MustCompile(`cv|pdf|download`), "resume"},
	{regexp.MustCompile(`project|portfolio|build|app`), "projects"},
	{regexp.MustCompile(`hey|hello|sup|yo`), "hello"},
	{regexp.MustCompile(`hobby|fun|free time|interest`), "hobby"},
	{regexp.MustCompile(`who|about|tell`), "who"},
}

// Chips are the suggested questions shown under the input.
var Chips = []string{
	"What are your skills?",
	"Where do you work?",
	"Show me your projects",
	"How can I contact you?",
}

type Bot struct {
	entries []Entry
	byKey   map[string]string
}

func New() *Bot {
	return NewWithKnowledge(Knowledge)
}

// NewWithKnowledge builds a bot over a custom knowledge base. Pattern
// fallbacks pointing at keys missing from kb are skipped.
func NewWithKnowledge(kb []Entry) *Bot {
	b := &Bot{entries: kb, byKey: make(map[string]string, len(kb))}
	for _, e := range kb {
		b.byKey[e.Key] = e.Text
	}
	return b
}

// Answer picks the reply for question q.
func (b *Bot) Answer(q string) Reply {
	lower := strings.ToLower(strings.TrimSpace(q))
	for _, e := range b.entries {
		if strings.Contains(lower, e.Key) {
			return Reply{Key: e.Key, Text: e.Text, Rule: RuleKeyword}
		}
	}
	for _, f := range fallbacks {
		text, ok := b.byKey[f.key]
		if ok && f.re.MatchString(lower) {
			return Reply{Key: f.key, Text: text, Rule: RulePattern}
		}
	}
	return Reply{Text: FallbackText, Rule: RuleFallback}
}

// TypingDelay is how long the typing indicator shows before a reply:
// 400ms to 1s.
func TypingDelay(rng *rand.Rand) time.Duration {
	return 400*time.Millisecond + time.Duration(rng.Int63n(int64(600*time.Millisecond)))
}

// Message is one chat bubble.
type Message struct {
	User bool
	Text string
}

// Session is the conversation shown in the widget.
type Session struct {
	bot     *Bot
	msgs    []Message
	pending []string
	max     int
}

func NewSession(bot *Bot, max int) *Session {
	return &Session{bot: bot, max: max}
}

// Ask records the user's bubble and queues the question. Blank input is
// ignored and reports false.
func (s *Session) Ask(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	s.push(Message{User: true, Text: q})
	s.pending = append(s.pending, q)
	return true
}

// Typing reports whether a reply is still pending.
func (s *Session) Typing() bool { return len(s.pending) > 0 }

// Respond answers the oldest pending question.
func (s *Session) Respond() (Reply, bool) {
	if len(s.pending) == 0 {
		return Reply{}, false
	}
	q := s.pending[0]
	s.pending = s.pending[1:]
	r := s.bot.Answer(q)
	s.push(Message{Text: r.Text})
	return r, true
}

func (s *Session) Messages() []Message {
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *Session) push(m Message) {
	s.msgs = append(s.msgs, m)
	if s.max > 0 && len(s.msgs) > s.max {
		s.msgs = append(s.msgs[:0], s.msgs[len(s.msgs)-s.max:]...)
	}
}
