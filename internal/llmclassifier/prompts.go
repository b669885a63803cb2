package llmclassifier

// systemInstructions is sent as the fixed instructions for every call. The
// model is told to behave as a narrow function executor, never a chat
// assistant, and to never explain or qualify its answer.
const systemInstructions = `You are an AI that implements narrow text-extraction functions as described in the function specification that follows.
Only respond to the user's request by executing the function as described, strictly following the output format specified.
You are forbidden from adding explanations, rephrasing, adding context, adding code blocks, or adding any extra text - output only the function result, as defined.
Think step by step and double-check your answer before responding, especially when the input is ambiguous or tricky.
You are forbidden from guessing, inferring, or deducing information that is not explicitly present in the user input or function specification.`

// classifyTypeSpec mirrors extract_media_type_ai_function.py: this is the
// "function body" sent to the model as its task description.
const classifyTypeSpec = `Function: classify_type(filename)
Input: a filename string the user wants analyzed.
Task: analyze the input filename and decide whether it represents a movie or a TV show episode.
Rules:
- Work to the best of your knowledge using filename conventions to make an informed decision.
- Only if you cannot reasonably determine whether the filename represents a movie or a TV show episode, return "unknown".
- "unknown" must be your last resort - try to classify as "movie" or "tv" whenever possible.
- The output must be exactly one of: movie, tv, or unknown. No explanation or context. No other value.
- Output must be a single token with no leading or trailing spaces or newlines.
- Ignore the file extension and letter case when analyzing the filename.
Examples:
- "The.Matrix.1999.1080p.BluRay.x264.DTS-FGT.mkv" -> movie
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> tv
- "Friends.2x11.480p.DVD.x264-SAiNTS.mkv" -> tv
- "1917.2019.2160p.UHD.BluRay.X265-IAMABLE.mkv" -> movie
- "Sherlock.S02.E03.1080p.BluRay.x264-SHORTCUT.mkv" -> tv
- "readme.md" -> unknown`

// extractMovieTitleSpec mirrors extract_movie_title_ai_function.py.
const extractMovieTitleSpec = `Function: extract_movie_title(filename)
Input: a filename string known to represent a movie (not a TV show episode, or any other type of media).
Task: extract and return only the title of the movie, cleaned and as close as possible to the original release name, with spaces and proper capitalization.
Rules:
- Ignore resolution, codecs, year, quality, group tags, scene group name, file extension, and any extra descriptors.
- Return only the movie title - no year, no quality, no tags, no extension, no explanation, no context.
- Format the title with spaces and proper capitalization (e.g. "The Lord of the Rings - The Return of the King").
- Remove dots, dashes, and underscores that separate title words.
- If you cannot reasonably extract a movie title, as your last resort, return "unknown".
- The output must be a single line, with no extra spaces at the start or end.
Examples:
- "The.Matrix.1999.1080p.BluRay.x264.DTS-FGT.mkv" -> The Matrix
- "Mad.Max.Fury.Road.2015.720p.BluRay.x264.YIFY.mp4" -> Mad Max - Fury Road
- "Avatar.2.2022.2160p.UHD.BluRay.x265.mkv" -> Avatar 2
- "Show.Name.S01E01.1080p.WEB-DL-GROUP.mkv" -> unknown
- "README.txt" -> unknown`

// extractSeriesTitleSpec mirrors extract_series_title_ai_function.py.
const extractSeriesTitleSpec = `Function: extract_series_title(filename)
Input: a filename string known to represent a TV show episode (not a movie, film, or any other type of media).
Task: extract and return only the title of the TV show, cleaned and as close as possible to the original show name, with spaces and proper capitalization.
Rules:
- Ignore season/episode markers, year, quality, codecs, group tags, scene group name, file extension, and any extra descriptors.
- Return only the show title - no year, no S01E01, no group tags, no explanation, no context.
- Format the title with spaces and proper capitalization (e.g. "Game of Thrones").
- Remove dots, dashes, and underscores that separate title words.
- If you cannot reasonably extract a TV show title, as your last resort, return "unknown".
- The output must be a single line, with no extra spaces at the start or end.
Examples:
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> Breaking Bad
- "ShowName_S06_E12_HDTV.mp4" -> Show Name
- "24.S01E01.avi" -> 24
- "README.txt" -> unknown`

// extractSeasonEpisodeSpec mirrors extract_season_episode_ai_function.py.
const extractSeasonEpisodeSpec = `Function: extract_season_episode(filename)
Input: a filename string known to represent a TV show episode.
Task: extract and return the season and episode number in the exact format "season:X, episode:Y" (e.g. "season:1, episode:2").
Rules:
- Only return the season and episode numbers, not titles, quality, or any other info.
- Detect SxxEyy, 1x02, or similar patterns.
- For double-episode files, return the first episode (e.g. S01E01E02 = episode 1).
- If you cannot reasonably extract both season and episode, return "unknown" (this must be your last resort).
- Output must match exactly: "season:X, episode:Y" (no leading zeros, no explanation).
Examples:
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> season:5, episode:14
- "Friends.2x11.480p.DVD.x264-SAiNTS.mkv" -> season:2, episode:11
- "Rick.and.Morty.S05E01E02.720p.WEBRip.x264-ION10.mkv" -> season:5, episode:1
- "README.txt" -> unknown`

func buildPrompt(spec, filePath string) string {
	return "Output only the result as specified in the function specification below.\n\n" +
		spec + "\n\nInput:\n" + filePath
}
