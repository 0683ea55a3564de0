//go:build component

package component

import "net/http"

func (s *ComponentTestSuite) TestHealth() {
	_, _, then := s.gherkin()

	then().
		theServerReportsServing()
}

func (s *ComponentTestSuite) TestListEventsByMonthAndCategory() {
	given, when, then := s.gherkin()

	given().
		theSpringProgramme()

	when().
		eventsAreListedFor("month=marec&event_type=All")

	then().
		theListingContains("Divadlo v parku", "Jarný koncert")

	when().
		eventsAreListedFor("event_type=Koncert&search=LETN")

	then().
		theListingContains("Letný koncert")
}

func (s *ComponentTestSuite) TestDuplicateRegistration() {
	given, when, then := s.gherkin()

	given().
		aRegisteredAndLoggedInMember()

	when().
		call(http.MethodPost, "/register", map[string]string{"email": "jana@example.sk", "password": "other"})

	then().
		theRequestIsRejected(http.StatusBadRequest, "exists")
}

func (s *ComponentTestSuite) TestFavorites() {
	given, when, then := s.gherkin()

	given().
		theSpringProgramme().
		aRegisteredAndLoggedInMember()

	when().
		theMemberFavorites("Letný koncert").
		theMemberFavorites("Jarný koncert").
		theMemberFavorites("Jarný koncert")

	then().
		theFavoritesAre("Jarný koncert", "Letný koncert")
}

func (s *ComponentTestSuite) TestLikeRaisesCategoryWeight() {
	given, when, then := s.gherkin()

	given().
		theSpringProgramme().
		aRegisteredAndLoggedInMember().
		theMemberPrefers("Koncert", "Divadlo")

	when().
		theMemberLikes("Jarný koncert")

	then().
		theWeightOfWillEventuallyBe("Koncert", 1.2).
		theWeightOfWillEventuallyBe("Divadlo", 1.0)
}
