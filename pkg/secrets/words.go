package secrets

// Word pools for Generate. Every entry is lowercase and free of spaces.
var (
	Colors = []string{
		"red", "blue", "green", "yellow", "orange", "purple",
		"pink", "brown", "black", "white", "gray", "silver",
		"gold", "teal", "maroon", "navy", "olive", "violet",
	}

	Places = []string{
		"paris", "london", "tokyo", "berlin", "madrid", "rome",
		"vienna", "prague", "oslo", "dublin", "lisbon", "athens",
		"cairo", "sydney", "toronto", "chicago", "boston", "denver",
		"seattle", "austin", "miami", "dallas", "lima", "quito",
		"nairobi", "delhi", "seoul",
	}

	Animals = []string{
		"tiger", "lion", "zebra", "panda", "koala", "otter", "beaver",
		"falcon", "eagle", "shark", "whale", "dolphin", "rabbit", "fox",
		"wolf", "bear", "moose", "camel", "llama", "bison", "gecko",
		"lemur", "heron", "raven", "owl", "badger", "hedgehog", "penguin",
	}
)
