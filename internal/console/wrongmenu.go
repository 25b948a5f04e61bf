package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/vocadrill/internal/persist"
)

const timestampLayout = "2006-01-02 15:04"

// ChooseWrongDeck lists the wrong decks in dir and returns the one picked
// for review. Decks can be deleted from the menu. ok is false when the
// learner backs out or there is nothing to review.
func (c *Console) ChooseWrongDeck(dir string) (persist.DeckInfo, bool) {
	for invalid := 0; invalid < maxMenuAttempts; {
		decks, err := persist.ListWrongDecks(dir)
		if err != nil {
			c.log.WithError(err).WithField("dir", dir).Error("failed to list wrong decks")
			return persist.DeckInfo{}, false
		}
		if len(decks) == 0 {
			c.println("No wrong decks available.")
			return persist.DeckInfo{}, false
		}

		c.println("")
		c.println(headerStyle.Render("=== Wrong Deck List ==="))
		for i, d := range decks {
			c.println(fmt.Sprintf("%d. %s [%s]", i+1, d.Display, d.Modified.Format(timestampLayout)))
		}
		c.println("d<number>: Delete deck (e.g., d1)")
		c.println("0: Back to main menu")
		c.print("Select: ")

		line, ok := c.readLine()
		line = strings.TrimSpace(line)
		if !ok || line == "" || line == "0" {
			return persist.DeckInfo{}, false
		}

		if rest, found := strings.CutPrefix(line, "d"); found {
			if idx, err := strconv.Atoi(rest); err == nil && idx >= 1 && idx <= len(decks) {
				c.deleteDeck(decks[idx-1])
			} else {
				invalid++
			}
			continue
		}

		idx, err := strconv.Atoi(line)
		switch {
		case err != nil:
			invalid++
			c.println("Invalid input.")
		case idx < 1 || idx > len(decks):
			invalid++
			c.println("Invalid selection.")
		default:
			return decks[idx-1], true
		}
	}
	return persist.DeckInfo{}, false
}

func (c *Console) deleteDeck(d persist.DeckInfo) {
	if !c.Confirm(fmt.Sprintf("Delete %s? (y/n): ", d.Display)) {
		return
	}
	if err := persist.DeleteDeck(d.Path); err != nil {
		c.log.WithError(err).WithField("path", d.Path).Warn("failed to delete wrong deck")
		c.println("Failed to delete.")
		return
	}
	c.println("Deleted.")
}
