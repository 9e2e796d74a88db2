package scoring

import "ocean-predict/internal/domain"

const (
	opn = domain.Openness
	con = domain.Conscientiousness
	ext = domain.Extraversion
	agr = domain.Agreeableness
	neu = domain.Neuroticism
)

// ipip50 es el set de marcadores IPIP Big-Five de dominio publico. Los items de
// estabilidad emocional se orientan a Neuroticism, asi que "Am relaxed most of
// the time" y "Seldom feel blue" van invertidos.
var ipip50 = []SurveyItem{
	{1, "Am the life of the party.", ext, false},
	{2, "Feel little concern for others.", agr, true},
	{3, "Am always prepared.", con, false},
	{4, "Get stressed out easily.", neu, false},
	{5, "Have a rich vocabulary.", opn, false},
	{6, "Don't talk a lot.", ext, true},
	{7, "Am interested in people.", agr, false},
	{8, "Leave my belongings around.", con, true},
	{9, "Am relaxed most of the time.", neu, true},
	{10, "Have difficulty understanding abstract ideas.", opn, true},
	{11, "Feel comfortable around people.", ext, false},
	{12, "Insult people.", agr, true},
	{13, "Pay attention to details.", con, false},
	{14, "Worry about things.", neu, false},
	{15, "Have a vivid imagination.", opn, false},
	{16, "Keep in the background.", ext, true},
	{17, "Sympathize with others' feelings.", agr, false},
	{18, "Make a mess of things.", con, true},
	{19, "Seldom feel blue.", neu, true},
	{20, "Am not interested in abstract ideas.", opn, true},
	{21, "Start conversations.", ext, false},
	{22, "Am not interested in other people's problems.", agr, true},
	{23, "Get chores done right away.", con, false},
	{24, "Am easily disturbed.", neu, false},
	{25, "Have excellent ideas.", opn, false},
	{26, "Have little to say.", ext, true},
	{27, "Have a soft heart.", agr, false},
	{28, "Often forget to put things back in their proper place.", con, true},
	{29, "Get upset easily.", neu, false},
	{30, "Do not have a good imagination.", opn, true},
	{31, "Talk to a lot of different people at parties.", ext, false},
	{32, "Am not really interested in others.", agr, true},
	{33, "Like order.", con, false},
	{34, "Change my mood a lot.", neu, false},
	{35, "Am quick to understand things.", opn, false},
	{36, "Don't like to draw attention to myself.", ext, true},
	{37, "Take time out for others.", agr, false},
	{38, "Shirk my duties.", con, true},
	{39, "Have frequent mood swings.", neu, false},
	{40, "Use difficult words.", opn, false},
	{41, "Don't mind being the center of attention.", ext, false},
	{42, "Feel others' emotions.", agr, false},
	{43, "Follow a schedule.", con, false},
	{44, "Get irritated easily.", neu, false},
	{45, "Spend time reflecting on things.", opn, false},
	{46, "Am quiet around strangers.", ext, true},
	{47, "Make people feel at ease.", agr, false},
	{48, "Am exacting in my work.", con, false},
	{49, "Often feel blue.", neu, false},
	{50, "Am full of ideas.", opn, false},
}
