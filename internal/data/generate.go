package data

import (
    "math/rand"
    "strconv"
    "strings"
)

var (
    offers   = []string{"free", "win", "claim", "cash", "prize", "bonus", "winner", "urgent", "offer"}
    rewards  = []string{"money", "ringtone", "voucher", "holiday", "iphone", "tickets", "credit"}
    calls    = []string{"txt", "call", "reply", "text", "click"}
    subjects = []string{"I", "we", "you", "mum", "dad", "she", "he", "they"}
    verbs    = []string{"meet", "call", "see", "pick up", "text", "wait for", "bring"}
    things   = []string{"coffee", "lunch", "dinner", "the car", "the kids", "class", "work", "the bus"}
    times    = []string{"later", "tomorrow", "tonight", "after work", "at 6", "on sunday", "soon"}
)

// Synthetic returns n generated messages. Each message may carry spam
// markers (an offer, a reward, a call to action, a number, shouting); two or
// more markers make it spam, otherwise spam is drawn with probability
// spamRate plus a per-marker bump.
func Synthetic(n int, spamRate float64, seed int64) []Message {
    rng := rand.New(rand.NewSource(seed))
    pick := func(xs []string) string { return xs[rng.Intn(len(xs))] }
    out := make([]Message, n)
    for i := range out {
        parts := []string{pick(subjects), pick(verbs), pick(things), pick(times)}
        score := 0.0
        flags := 0
        if rng.Float64() < 0.2 {
            parts = append([]string{pick(offers)}, parts...)
            score += 0.3
            flags++
        }
        if rng.Float64() < 0.15 {
            parts = append(parts, pick(rewards))
            score += 0.2
            flags++
        }
        if rng.Float64() < 0.15 {
            parts = append(parts, pick(calls), strconv.Itoa(80000+rng.Intn(10000)))
            score += 0.3
            flags++
        }
        text := strings.Join(parts, " ")
        if rng.Float64() < 0.05 {
            text = strings.ToUpper(text)
            score += 0.1
            flags++
        }
        spam := flags >= 2 || rng.Float64() < spamRate*(1+score)
        out[i] = Message{Spam: spam, Text: text}
    }
    return out
}

// GenerateSyntheticMessages writes Synthetic(n, spamRate, seed) to outPath.
func GenerateSyntheticMessages(n int, spamRate float64, seed int64, outPath string) error {
    return WriteTSV(outPath, Synthetic(n, spamRate, seed))
}
