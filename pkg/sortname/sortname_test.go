package sortname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title    string
		expected string
	}{
		{"The Wall", "Wall, The"},
		{"A Love Supreme", "Love Supreme, A"},
		{"An American in Paris", "American in Paris, An"},
		{"Abbey Road", "Abbey Road"},
		{"the dark side of the moon", "dark side of the moon, the"},
		{"Them Crooked Vultures", "Them Crooked Vultures"},
		{"The", "The"},
		{"  The Kinks  ", "Kinks, The"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ForTitle(tt.title), "title: %q", tt.title)
	}
}

func TestForPerson(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
	}{
		{"Miles Davis", "Davis, Miles"},
		{"Hank Williams Jr.", "Williams, Hank, Jr."},
		{"Sir Elton John", "John, Elton"},
		{"Ludwig van Beethoven", "Beethoven, Ludwig van"},
		{"Johann Sebastian Bach", "Bach, Johann Sebastian"},
		{"Sting", "Sting"},
		{"Dame Shirley Bassey", "Bassey, Shirley"},
		{"Sammy Davis Jr.", "Davis, Sammy, Jr."},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ForPerson(tt.name), "name: %q", tt.name)
	}
}
