package lessons

const upsertLessonVideoQuery = `
	INSERT INTO lesson_video (
		lesson_id,
		video_id,
		reference,
		slug,
		title,
		thumbnail,
		duration,
		enriched,
		published_at,
		channel_title
	)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''))
	ON CONFLICT (lesson_id) DO UPDATE SET
		video_id = EXCLUDED.video_id,
		reference = EXCLUDED.reference,
		slug = EXCLUDED.slug,
		title = EXCLUDED.title,
		thumbnail = EXCLUDED.thumbnail,
		duration = EXCLUDED.duration,
		enriched = EXCLUDED.enriched,
		published_at = EXCLUDED.published_at,
		channel_title = EXCLUDED.channel_title,
		updated_at = NOW()
	RETURNING created_at, updated_at
`

const selectLessonVideo = `
	SELECT
		lesson_id,
		video_id,
		reference,
		slug,
		title,
		COALESCE(thumbnail, ''),
		duration,
		enriched,
		published_at,
		COALESCE(channel_title, ''),
		created_at,
		updated_at
	FROM lesson_video
`

const getLessonVideoQuery = selectLessonVideo + `
	WHERE lesson_id = $1
`

// Oldest first so every row eventually gets its turn
const getUnenrichedQuery = selectLessonVideo + `
	WHERE enriched = FALSE
	ORDER BY updated_at ASC, lesson_id ASC
	LIMIT $1
`

const deleteLessonVideoQuery = `
	DELETE FROM lesson_video WHERE lesson_id = $1
`

const countVideoLessonsQuery = `
	SELECT COUNT(*) FROM lesson_video WHERE video_id = $1
`
