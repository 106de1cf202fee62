package flow

const (
	msgResultIdle = "Watch the avatars move..."
	msgMoveIdle   = "(depends on whether you are a winner)"

	msgResultCloser = "We're getting closer !!!"
	msgMoveCloser   = "Pls get it right again. I miss u."

	msgResultReunion = "We beat the distance!"
	msgMoveReunion   = "You both met in the middle!"

	msgResultWrong = "NOOOOOOO, wrong answer, we're drifting apart!!"
	msgMoveWrong   = "We drifted apart. You HAVE to get it right now >.<"

	labelNextQuestion = "Next Question"
	labelWhatNext     = "What comes next?"
	labelTryAgain     = "Try This Question Again"

	msgEnvelopeYes = "You have no idea how happy I am right now!"

	msgCryIdle     = "Do you want to make me cry forever?"
	msgCryPrompt   = "Did my feelings miss the mark?"
	msgCryResigned = "Going to my corner to cry. Bye. :'("

	msgFinalSummary = "Solved all %d questions. Retries used: %d."
)
