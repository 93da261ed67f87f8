package bank

// stemSet holds one category's embedded content: question stems, the
// correct answer for each stem (missing entries fall back to NoneOption),
// and the shared distractor pool the option builder samples from.
type stemSet struct {
	Stems       []string
	Answers     []string
	Distractors []string
}

var stemSets = map[Category]stemSet{
	CategoryLogic: {
		Stems: []string{
			"If all Zorks are Mips and all Mips are Fins, are all Zorks necessarily Fins?",
			"A farmer has 17 sheep and all but 9 run away. How many sheep remain?",
			"Two fathers and two sons share 3 apples, one each. How is that possible?",
			"If it takes 5 machines 5 minutes to make 5 widgets, how long do 100 machines need for 100 widgets?",
			"A is taller than B, and B is taller than C. Who is shortest?",
			"If yesterday was tomorrow, today would be Friday. What day is it really?",
			"Three switches control one bulb behind a door you may open once. How many visits do you need?",
			"A bat and a ball cost 110 cents and the bat costs 100 cents more than the ball. What does the ball cost?",
			"If some Glims are Trons and no Trons are Vels, can a Glim be a Vel?",
			"You overtake the runner in second place. What place are you in now?",
			"A clock strikes six in 5 seconds. How long does it take to strike twelve?",
			"How many times can you subtract 10 from 100?",
			"Every station on a 4-stop line links to every other. How many distinct tracks is that?",
			"A snail climbs 3 meters by day and slips 2 by night up a 10-meter wall. On which day does it escape?",
			"If two typists type two pages in two minutes, how many typists type 18 pages in six minutes?",
			"A box holds red and blue marbles in ratio 3 to 2. Out of 25 marbles, how many are blue?",
			"What is the minimum number of socks pulled from a drawer of two colors to guarantee a pair?",
			"If a brick weighs one kilo plus half a brick, what does a brick weigh?",
		},
		Answers: []string{
			"Yes",
			"9",
			"They are grandfather, father and son",
			"5 minutes",
			"C",
			"Sunday",
			"One",
			"5 cents",
			"Sometimes",
			"Second",
			"11 seconds",
			"Once",
			"6",
			"Day 8",
			"6",
			"10",
			"Three",
			"Two kilos",
		},
		Distractors: []string{
			"Yes", "No", "Cannot be determined", "8", "17", "10 minutes",
			"100 minutes", "A", "B", "First", "Third", "Twice", "Day 10",
			"Four", "One kilo", "12", "Five", "Seven", "Day 9",
		},
	},
	CategoryRiddle: {
		Stems: []string{
			"What has keys but opens no locks?",
			"What has a face and two hands but no arms or legs?",
			"What gets wetter the more it dries?",
			"What can travel around the world while staying in a corner?",
			"What has a neck but no head?",
			"What goes up but never comes down?",
			"What has one eye but cannot see?",
			"The more you take, the more you leave behind. What are they?",
			"What belongs to you but is used more by others?",
			"What can you catch but not throw?",
			"What has cities but no houses, forests but no trees?",
			"What breaks the moment you say its name?",
			"What runs all around a garden without moving?",
			"What can fill a room but takes up no space?",
			"What has a thumb and four fingers but is not alive?",
			"What gets sharper the more you use it?",
			"What has an ear but cannot hear?",
			"What kind of coat is best put on wet?",
		},
		Answers: []string{
			"A piano",
			"A clock",
			"A towel",
			"A stamp",
			"A bottle",
			"Your age",
			"A needle",
			"Footsteps",
			"Your name",
			"A cold",
			"A map",
			"Silence",
			"A fence",
			"Light",
			"A glove",
			"Your brain",
			"Corn",
			"A coat of paint",
		},
		Distractors: []string{
			"A piano", "A clock", "A river", "A shadow", "An echo", "A candle",
			"A map", "A mirror", "The wind", "A sponge", "A ladder",
			"A mountain", "A balloon", "A book", "A kite",
		},
	},
	CategoryPattern: {
		Stems: []string{
			"What comes next: 2, 4, 8, 16, ...?",
			"What comes next: 1, 1, 2, 3, 5, 8, ...?",
			"What comes next: 3, 6, 9, 12, ...?",
			"What comes next: 1, 4, 9, 16, ...?",
			"What comes next: 81, 27, 9, 3, ...?",
			"What comes next: 2, 3, 5, 7, 11, ...?",
			"What comes next: 1, 2, 4, 7, 11, ...?",
			"What comes next: 10, 9, 7, 4, ...?",
			"What comes next: 5, 10, 20, 40, ...?",
			"What comes next: 1, 8, 27, 64, ...?",
			"Which letter comes next: A, C, E, G, ...?",
			"Which letter comes next: Z, X, V, T, ...?",
			"What comes next: 2, 6, 12, 20, 30, ...?",
			"What comes next: 1, 3, 7, 15, 31, ...?",
			"What comes next: 100, 50, 25, ...?",
			"What comes next: 4, 9, 19, 39, ...?",
			"Which shape continues: circle, square, circle, square, ...?",
		},
		Answers: []string{
			"32",
			"13",
			"15",
			"25",
			"1",
			"13",
			"16",
			"0",
			"80",
			"125",
			"I",
			"R",
			"42",
			"63",
			"12.5",
			"79",
			"Circle",
		},
		Distractors: []string{
			"32", "13", "15", "25", "16", "42", "63", "79", "80", "0", "1",
			"125", "12.5", "I", "R", "Circle", "Square", "24", "64",
		},
	},
	CategoryWordplay: {
		Stems: []string{
			"Which word becomes shorter when you add two letters to it?",
			"What word is spelled incorrectly in every dictionary?",
			"Which word contains all five vowels exactly once, in order?",
			"What five-letter word becomes one when two letters are removed?",
			"Which word reads the same upside down?",
			"What word begins and ends with E but holds only one letter?",
			"Which common word has three consecutive double letters?",
			"What word sounds the same after removing four of its five letters?",
			"Which word becomes a number when you remove its first letter?",
			"What do you call a word that reads the same forwards and backwards?",
			"Which word has no vowels yet is perfectly valid?",
			"What seven-letter word contains dozens of letters?",
			"Which word becomes plural by adding no letters at all?",
			"What starts with T, ends with T, and has T in it?",
			"Which English word retains its pronunciation after losing its last four letters?",
			"What word becomes its own opposite when you swap its first letter for a B?",
			"Which four-letter word can be written forward, backward, or upside down and still be read left to right?",
			"What is the only English word ending in -mt?",
		},
		Answers: []string{
			"Short",
			"Incorrectly",
			"Facetious",
			"Stone",
			"SWIMS",
			"Envelope",
			"Bookkeeper",
			"Queue",
			"Stone",
			"A palindrome",
			"Rhythm",
			"Mailbox",
			"Sheep",
			"A teapot",
			"Queue",
			"None",
			"NOON",
			"Dreamt",
		},
		Distractors: []string{
			"Short", "Long", "Queue", "Rhythm", "SWIMS", "NOON", "Sheep",
			"Envelope", "A palindrome", "An anagram", "Stone", "Dreamt",
			"Bookkeeper", "Mailbox", "A kettle",
		},
	},
	CategoryTrick: {
		Stems: []string{
			"How many months of the year have 28 days?",
			"A rooster lays an egg on a sloped roof. Which way does it roll?",
			"How much dirt is in a hole one meter wide and one meter deep?",
			"If a plane crashes on the border of two countries, where are the survivors buried?",
			"What weighs more: a kilo of feathers or a kilo of bricks?",
			"How many animals of each kind did Moses take on the ark?",
			"You light a match in a dark room with a candle, a lamp and a fireplace. What do you light first?",
			"If there are 6 apples and you take away 4, how many do you have?",
			"A doctor gives you three pills to take every half hour. How long do they last?",
			"Some months have 31 days, some have 30. How many have 28?",
			"Can a man legally marry his widow's sister?",
			"How far can a dog run into the forest?",
			"What was the largest mountain on Earth before Everest was discovered?",
			"A truck driver goes the wrong way down a one-way street past two police officers. Why is he not stopped?",
			"Divide 30 by half and add ten. What do you get?",
			"If you have one haystack in one field and two in another, how many do you have after combining them?",
			"What happened on the 30th of February 1990?",
			"How many birthdays does the average person have?",
		},
		Answers: []string{
			"All of them",
			"Roosters do not lay eggs",
			"None",
			"Survivors are not buried",
			"They weigh the same",
			"None, it was Noah",
			"The match",
			"4",
			"One hour",
			"All of them",
			"No, he is dead",
			"Halfway",
			"Everest",
			"He was walking",
			"70",
			"One",
			"Nothing, the date does not exist",
			"One",
		},
		Distractors: []string{
			"All of them", "None", "One", "Two", "4", "6", "Halfway",
			"They weigh the same", "The feathers", "The bricks", "The match",
			"The candle", "One hour", "Everest", "25", "70", "He was walking",
			"The lamp", "Half of them",
		},
	},
}
