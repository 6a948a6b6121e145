package vision

// AnalysisPrompt instructs the model to watch the goalkeeper and answer
// with a single JSON object. Models routinely wrap the object in prose or
// markdown fences anyway, so extraction downstream tolerates surrounding
// text.
const AnalysisPrompt = `You are an expert football goalkeeping analyst. Watch this match video and track the goalkeeper's involvement.

Identify every save the goalkeeper makes and every goal conceded. For each event note the video timestamp (MM:SS) and where in the goal mouth the ball went: top-left, top-right, bottom-left, bottom-right or center.

Respond with a single JSON object in exactly this shape and nothing else:
{
  "saves": <number of saves>,
  "goals": <number of goals conceded>,
  "summary": "<one or two sentences on the goalkeeper's overall performance>",
  "events": [
    {"type": "save" or "goal", "timestamp": "MM:SS", "description": "<one sentence including the goal-mouth zone>"}
  ]
}`
