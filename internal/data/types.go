package data

// Message is one labeled document of the corpus. Spam is the positive class.
type Message struct {
    Spam bool   `json:"spam"`
    Text string `json:"text"`
}

// Split returns the texts and labels of msgs as parallel slices.
func Split(msgs []Message) ([]string, []bool) {
    texts := make([]string, len(msgs))
    labels := make([]bool, len(msgs))
    for i, m := range msgs { texts[i], labels[i] = m.Text, m.Spam }
    return texts, labels
}
