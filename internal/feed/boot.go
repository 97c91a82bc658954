package feed

import (
	"math/rand"
	"time"
)

// HideLoaderAfter is how long the boot screen stays up regardless of how
// far the console got.
const HideLoaderAfter = 3500 * time.Millisecond

type LineKind int

const (
	LineCmd LineKind = iota
	LineOutput
	LineSuccess
	LineInfo
	LineWarn
)

type BootLine struct {
	Text string
	Kind LineKind
}

var BootScript = []BootLine{
	{"$ whoami", LineCmd},
	{"jomin@dev-station", LineOutput},
	{"$ cd ~/portfolio && git status", LineCmd},
	{"On branch main, working tree clean", LineSuccess},
	{"$ node -v && java --version", LineCmd},
	{"v20.11.0 | openjdk 17.0.9", LineOutput},
	{"$ npm install (847 packages)", LineCmd},
	{"✓ dependencies resolved in 3.2s", LineSuccess},
	{"$ mvn clean compile -q", LineCmd},
	{"[INFO] BUILD SUCCESS: 42 sources compiled", LineInfo},
	{"$ docker-compose up -d", LineCmd},
	{"✓ api-server     ● Running :8080", LineSuccess},
	{"✓ react-frontend ● Running :3000", LineSuccess},
	{"✓ oracle-db      ● Running :1521", LineSuccess},
	{"$ curl -s localhost:8080/health", LineCmd},
	{`{ "status": "UP", "uptime": "0d 0h 2m" }`, LineInfo},
	{"$ npm run build", LineCmd},
	{"✓ Compiled successfully, 0 errors", LineSuccess},
	{"$ deploying to production...", LineWarn},
	{"★ Portfolio is LIVE! ✦", LineSuccess},
}

// Boot reveals BootScript one line at a time.
type Boot struct {
	rng   *rand.Rand
	lines []BootLine
	shown int
}

func NewBoot(rng *rand.Rand) *Boot {
	return &Boot{rng: rng, lines: BootScript}
}

// Next reveals the next line and returns the delay before the one after
// it. Commands pause longer than their output. ok is false once the
// script is exhausted.
func (b *Boot) Next() (line BootLine, delay time.Duration, ok bool) {
	if b.shown >= len(b.lines) {
		return BootLine{}, 0, false
	}
	line = b.lines[b.shown]
	b.shown++
	if line.Kind == LineCmd {
		delay = 200*time.Millisecond + time.Duration(b.rng.Int63n(int64(150*time.Millisecond)))
	} else {
		delay = 100*time.Millisecond + time.Duration(b.rng.Int63n(int64(80*time.Millisecond)))
	}
	return line, delay, true
}

// Shown returns the revealed lines in order.
func (b *Boot) Shown() []BootLine { return b.lines[:b.shown:b.shown] }

// Progress is the fraction of the script revealed, 0 to 1.
func (b *Boot) Progress() float64 {
	return float64(b.shown) / float64(len(b.lines))
}

func (b *Boot) Done() bool { return b.shown >= len(b.lines) }
