package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var tagPool = []string{
	"water", "ice", "salt", "history", "magic", "animal", "vegetation",
	"food", "travel", "music", "photography", "science", "art", "coding",
	"nature", "sport", "ocean", "mountain", "city", "night",
}

var titles = []string{"mr", "ms", "mrs", "miss", "dr"}

func init() {
	gofakeit.Seed(time.Now().UnixNano())
}

// fakeUser builds a createUser payload with every required field populated.
func fakeUser() service.CreateUserInput {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	return service.CreateUserInput{
		Title:       titles[rand.Intn(len(titles))],
		FirstName:   first,
		LastName:    last,
		Gender:      gofakeit.Gender(),
		Email:       fmt.Sprintf("%s.%s.%s@example.com", strings.ToLower(first), strings.ToLower(last), uuid.NewString()[:8]),
		DateOfBirth: gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		).Format("2006-01-02"),
		Phone:   gofakeit.Phone(),
		Picture: fmt.Sprintf("https://picsum.photos/seed/%s/128/128", uuid.NewString()),
		Location: &service.LocationInput{
			Street:   gofakeit.Street(),
			City:     gofakeit.City(),
			State:    gofakeit.State(),
			Country:  gofakeit.Country(),
			Timezone: gofakeit.TimeZoneRegion(),
		},
	}
}

// fakePost builds a createPost payload owned by ownerID with 1 to 3 tags
// drawn from the shared pool. Duplicates in the draw are fine, the creation
// path collapses them.
func fakePost(ownerID uint) service.CreatePostInput {
	tags := make([]string, 1+rand.Intn(3))
	for i := range tags {
		tags[i] = tagPool[rand.Intn(len(tagPool))]
	}
	return service.CreatePostInput{
		Text:  gofakeit.Sentence(8 + rand.Intn(10)),
		Image: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", uuid.NewString()),
		Likes: rand.Intn(500),
		Link:  gofakeit.URL(),
		Tags:  tags,
		Owner: ownerID,
	}
}

func fakeComment(ownerID, postID uint) service.CreateCommentInput {
	return service.CreateCommentInput{
		Message: gofakeit.Sentence(5 + rand.Intn(12)),
		Owner:   ownerID,
		Post:    postID,
	}
}
