package seed

type userFixture struct {
	Email    string
	Password string
	Name     string
	IsStaff  bool
}

type bookFixture struct {
	Title    string
	Author   int // 1-based index into authorFixtures
	Genre    int // 1-based index into genreFixtures
	ISBN     string
	Quantity int
}

type waitlistFixture struct {
	User       int // 1-based index into userFixtures
	Book       int // 1-based index into bookFixtures
	DatePlaced string
	LimitDate  string
}

var userFixtures = []userFixture{
	{Email: "librarian1@example.com", Password: "password1", Name: "Librarian 1", IsStaff: true},
	{Email: "librarian2@example.com", Password: "password2", Name: "Librarian 2", IsStaff: true},
	{Email: "user1@example.com", Password: "password3", Name: "User 1"},
	{Email: "user2@example.com", Password: "password4", Name: "User 2"},
}

var authorFixtures = []string{
	"George Orwell", "J.K. Rowling", "Isaac Asimov", "J.R.R. Tolkien", "Jane Austen",
	"Mark Twain", "Charles Dickens", "Agatha Christie", "Ernest Hemingway", "F. Scott Fitzgerald",
	"William Shakespeare", "Stephen King", "Arthur Conan Doyle", "Virginia Woolf", "Ray Bradbury",
	"H.G. Wells", "Haruki Murakami", "Gabriel Garcia Marquez", "Kurt Vonnegut", "Oscar Wilde",
	"C.S. Lewis", "Leo Tolstoy", "Mary Shelley", "Aldous Huxley", "Emily Bronte",
	"J.D. Salinger", "Toni Morrison", "Herman Melville", "Fyodor Dostoevsky", "Edgar Allan Poe",
	"James Joyce", "Franz Kafka", "Lewis Carroll", "George R.R. Martin", "Jules Verne",
	"Ayn Rand", "Jack London", "Homer", "Ralph Ellison", "Charlotte Perkins Gilman",
	"Margaret Atwood", "John Steinbeck", "Robert Louis Stevenson", "Joseph Conrad", "Thomas Hardy",
}

var genreFixtures = []string{
	"Fantasy", "Science Fiction", "Mystery", "Historical Fiction", "Romance",
	"Horror", "Drama", "Thriller", "Adventure", "Dystopian",
	"Classic", "Humor", "Philosophical", "Mythology", "Biography",
	"Non-Fiction", "Poetry", "Western", "Political Fiction", "Satire",
	"Magical Realism", "Children's", "Young Adult", "Gothic", "Psychological Fiction",
}

var bookFixtures = []bookFixture{
	{Title: "1984", Author: 1, Genre: 10, ISBN: "9780451524935", Quantity: 3},
	{Title: "Harry Potter and the Sorcerer's Stone", Author: 2, Genre: 1, ISBN: "9780439554930", Quantity: 4},
	{Title: "Foundation", Author: 3, Genre: 2, ISBN: "9780553293357", Quantity: 2},
	{Title: "The Hobbit", Author: 4, Genre: 1, ISBN: "9780547928227", Quantity: 3},
	{Title: "Pride and Prejudice", Author: 5, Genre: 5, ISBN: "9780141439518", Quantity: 3},
	{Title: "The Adventures of Tom Sawyer", Author: 6, Genre: 12, ISBN: "9780486400778", Quantity: 1},
	{Title: "A Tale of Two Cities", Author: 7, Genre: 11, ISBN: "9780141439600", Quantity: 2},
	{Title: "Murder on the Orient Express", Author: 8, Genre: 3, ISBN: "9780062693662", Quantity: 3},
	{Title: "The Old Man and the Sea", Author: 9, Genre: 4, ISBN: "9780684801223", Quantity: 6},
	{Title: "The Great Gatsby", Author: 10, Genre: 11, ISBN: "9780743273565", Quantity: 4},
	{Title: "Hamlet", Author: 11, Genre: 7, ISBN: "9780743477123", Quantity: 6},
	{Title: "The Shining", Author: 12, Genre: 6, ISBN: "9780307743657", Quantity: 5},
	{Title: "The Hound of the Baskervilles", Author: 13, Genre: 3, ISBN: "9780141032436", Quantity: 3},
	{Title: "Mrs. Dalloway", Author: 14, Genre: 7, ISBN: "9780156628709", Quantity: 4},
	{Title: "Fahrenheit 451", Author: 15, Genre: 2, ISBN: "9781451673319", Quantity: 5},
	{Title: "The War of the Worlds", Author: 16, Genre: 2, ISBN: "9780345484218", Quantity: 6},
	{Title: "Norwegian Wood", Author: 17, Genre: 25, ISBN: "9780375704024", Quantity: 2},
	{Title: "One Hundred Years of Solitude", Author: 18, Genre: 21, ISBN: "9780060883287", Quantity: 4},
	{Title: "Slaughterhouse-Five", Author: 19, Genre: 20, ISBN: "9780385333849", Quantity: 3},
	{Title: "The Picture of Dorian Gray", Author: 20, Genre: 7, ISBN: "9780141439570", Quantity: 5},
	{Title: "The Lion, the Witch and the Wardrobe", Author: 21, Genre: 1, ISBN: "9780064471046", Quantity: 2},
	{Title: "War and Peace", Author: 22, Genre: 11, ISBN: "9780199232765", Quantity: 6},
	{Title: "Frankenstein", Author: 23, Genre: 24, ISBN: "9780486282114", Quantity: 6},
	{Title: "Brave New World", Author: 24, Genre: 10, ISBN: "9780060850524", Quantity: 4},
	{Title: "Wuthering Heights", Author: 25, Genre: 24, ISBN: "9780141439556", Quantity: 3},
	{Title: "Animal Farm", Author: 1, Genre: 19, ISBN: "9780451526342", Quantity: 3},
	{Title: "Harry Potter and the Chamber of Secrets", Author: 2, Genre: 1, ISBN: "9780439064873", Quantity: 4},
	{Title: "I, Robot", Author: 3, Genre: 2, ISBN: "9780553382563", Quantity: 5},
	{Title: "The Lord of the Rings: The Fellowship of the Ring", Author: 4, Genre: 9, ISBN: "9780547928210", Quantity: 6},
	{Title: "Sense and Sensibility", Author: 5, Genre: 5, ISBN: "9780141439662", Quantity: 6},
	{Title: "The Prince and the Pauper", Author: 6, Genre: 12, ISBN: "9780486411101", Quantity: 2},
	{Title: "Great Expectations", Author: 7, Genre: 11, ISBN: "9780141439563", Quantity: 3},
	{Title: "The ABC Murders", Author: 8, Genre: 3, ISBN: "9780062073587", Quantity: 5},
	{Title: "For Whom the Bell Tolls", Author: 9, Genre: 4, ISBN: "9780684803357", Quantity: 6},
	{Title: "Tender is the Night", Author: 10, Genre: 11, ISBN: "9780684801544", Quantity: 6},
	{Title: "Macbeth", Author: 11, Genre: 17, ISBN: "9780743477109", Quantity: 3},
	{Title: "Carrie", Author: 12, Genre: 6, ISBN: "9780307743664", Quantity: 4},
	{Title: "A Study in Scarlet", Author: 13, Genre: 3, ISBN: "9780141032535", Quantity: 4},
	{Title: "To the Lighthouse", Author: 14, Genre: 7, ISBN: "9780156907391", Quantity: 5},
	{Title: "The Martian Chronicles", Author: 15, Genre: 2, ISBN: "9780062079930", Quantity: 6},
	{Title: "The Time Machine", Author: 16, Genre: 2, ISBN: "9780345321601", Quantity: 6},
	{Title: "Kafka on the Shore", Author: 17, Genre: 25, ISBN: "9781400079278", Quantity: 4},
	{Title: "Love in the Time of Cholera", Author: 18, Genre: 21, ISBN: "9780307389731", Quantity: 4},
	{Title: "Cat's Cradle", Author: 19, Genre: 20, ISBN: "9780385333481", Quantity: 2},
	{Title: "The Importance of Being Earnest", Author: 20, Genre: 13, ISBN: "9780486264783", Quantity: 4},
	{Title: "The Horse and His Boy", Author: 21, Genre: 1, ISBN: "9780064471061", Quantity: 4},
	{Title: "Anna Karenina", Author: 22, Genre: 11, ISBN: "9780140449174", Quantity: 5},
	{Title: "The Last Man", Author: 23, Genre: 6, ISBN: "9780140439123", Quantity: 5},
	{Title: "Island", Author: 24, Genre: 10, ISBN: "9780060850525", Quantity: 2},
	{Title: "Agnes Grey", Author: 25, Genre: 24, ISBN: "9780140432100", Quantity: 4},
}

var waitlistFixtures = []waitlistFixture{
	{User: 3, Book: 6, DatePlaced: "2025-01-10", LimitDate: "2025-01-24"},
	{User: 4, Book: 3, DatePlaced: "2025-01-12", LimitDate: "2025-01-26"},
}
