// Package subjectdata holds the static subject catalogue seeded into the
// subjects collection at startup.
package subjectdata

import "github.com/asterisk-academy/backend/models"

// Catalogue returns the built-in subject tree. Codes follow the Cambridge
// syllabus numbering.
func Catalogue() []models.Subject {
	return []models.Subject{
		{
			SubjectCode: "0455",
			SubjectName: "Economics",
			Levels: []models.Level{
				{
					LevelName: "IGCSE",
					Topics: []models.Topic{
						{TopicName: "The Basic Economics Problem", Subtopics: []string{"The nature of the economic problem", "The factors of production", "Opportunity cost", "PPC Diagrams"}},
						{TopicName: "The Allocation of Resources", Subtopics: []string{"Microeconomics and Macroeconomics", "The roles of markets in allocating resources", "Demand", "Supply", "Price determination", "Price changes", "Price Elasticity of Demand", "Price Elasticity of Supply", "Economic systems", "Market failure"}},
						{TopicName: "Microeconomics decision makers", Subtopics: []string{"Money and banking", "Economic agents", "Firms' production, costs, revenue and objectives", "Firms", "Types of Integrations", "Economies and diseconomies of scale", "Market Structures"}},
						{TopicName: "Government and the Macroeconomy", Subtopics: []string{"Role of Government", "Government's Macroeconomic Aims", "Fiscal, Monetary, and/or Supply-side policy", "Economic growth", "Employment and unemployment", "Inflation and deflation"}},
						{TopicName: "Economic Development", Subtopics: []string{"Living standards", "Poverty", "Population"}},
						{TopicName: "International Trade and Globalization", Subtopics: []string{"International specialization", "Globalization, free trade, and protection", "Foreign exchange rates", "Current account of balance of payments"}},
					},
				},
			},
		},
		{
			SubjectCode: "0620",
			SubjectName: "Chemistry",
			Levels: []models.Level{
				{
					LevelName: "IGCSE",
					Topics: []models.Topic{
						{TopicName: "States of Matter", Subtopics: []string{"Solids, liquids and gases", "Diffusion"}},
						{TopicName: "Atoms, Elements and Compounds", Subtopics: []string{"Elements, compounds, and mixtures", "Atomic structure and the Periodic Table", "Isotopes", "Ions and ionic bonds", "Simple molecules and covalent bonds", "Giant covalent structures", "Metallic bonding"}},
						{TopicName: "Stoichiometry", Subtopics: []string{"Formulae", "Relative masses of atoms and molecules", "The mole and the avogadro constant"}},
						{TopicName: "Electrochemistry", Subtopics: []string{"Electrolysis", "Hydrogen-oxygen fuel cells"}},
						{TopicName: "Chemical Energetics", Subtopics: []string{"Exothermic and endothermic reactions"}},
						{TopicName: "Chemical Reactions", Subtopics: []string{"Physical and chemical changes", "Rate of reaction", "Reversible reactions and equilibrium", "Redox"}},
						{TopicName: "Acids, Bases, and Salts", Subtopics: []string{"The characteristic properties of acids and bases", "Oxides", "Preparation of salts"}},
						{TopicName: "The Periodic Table", Subtopics: []string{"Arrangement of elements", "Group I Properties", "Group VII Properties", "Transition Elements", "Noble Gases"}},
						{TopicName: "Metals", Subtopics: []string{"Properties of Metals", "Uses of Metals", "Alloys and their properties", "Reactivity Series", "Corrosion of Metals", "Extraction of Metals"}},
						{TopicName: "Chemistry of the Environment", Subtopics: []string{"Water", "Fertilisers", "Air quality and climate"}},
						{TopicName: "Organic Chemistry", Subtopics: []string{"Formulae, functional groups and terminology", "Naming organic compounds", "Fuels", "Alkanes", "Alkenes", "Alcohols", "Carboxylic acids", "Polymers"}},
						{TopicName: "Experimental Techniques and Chemical Analysis", Subtopics: []string{"Experimental design", "Acid-base titrations", "Chromatography", "Separation and purification", "Identification of ions and gases"}},
					},
				},
			},
		},
		{
			SubjectCode: "0625",
			SubjectName: "Physics",
			Levels: []models.Level{
				{
					LevelName: "IGCSE",
					Topics: []models.Topic{
						{TopicName: "Motion, Forces and Energy", Subtopics: []string{"Physical quantities and measurement techniques", "Motion", "Mass and weight", "Density", "Forces", "Momentum", "Energy, work and power", "Pressure"}},
						{TopicName: "Thermal Physics", Subtopics: []string{"Kinetic particle model of matter", "Thermal properties and temperature", "Transfer of thermal energy"}},
						{TopicName: "Waves", Subtopics: []string{"General properties of waves", "Light", "Electromagnetic Spectrum", "Sound"}},
						{TopicName: "Electricity and Magnetism", Subtopics: []string{"Simple phenomena of magnetism", "Electrical quantities", "Electrical circuits", "Electrical safety", "Electromagnetic effects"}},
						{TopicName: "Nuclear Physics", Subtopics: []string{"The nuclear model of the atom", "Radioactivity"}},
						{TopicName: "Space Physics", Subtopics: []string{"The Earth and the Solar System", "Stars and the Universe"}},
					},
				},
			},
		},
		{
			SubjectCode: "9708",
			SubjectName: "Economics (A Level)",
			Levels: []models.Level{
				{
					LevelName: "AS-Level",
					Topics: []models.Topic{
						{TopicName: "Basic Economic Ideas and Resource Allocations", Subtopics: []string{"Scarcity, choice and opportunity cost", "Economic methodology", "Factors of production", "Resource allocation in different economic systems", "Production possibility curves", "Classification of goods and services"}},
						{TopicName: "The Price System and the Microeconomy", Subtopics: []string{"Demand and supply curves", "Price elasticity, income elasticity and cross elasticity of demand", "Price elasticity of supply", "The interaction of demand and supply", "Consumer and producer surplus"}},
						{TopicName: "Government Microeconomic Intervention", Subtopics: []string{"Reasons for government intervention in markets", "Methods and effects of government intervention in markets", "Addressing income and wealth inequality"}},
						{TopicName: "The Macroeconomy", Subtopics: []string{"National income statistics", "Introduction to the circular flow of income", "Aggregate demand and aggregate supply analysis", "Economic growth", "Unemployment", "Price stability"}},
						{TopicName: "Government Macroeconomic Intervention", Subtopics: []string{"Government macroeconomic policy objectives", "Fiscal policy", "Monetary policy", "Supply-side policy"}},
						{TopicName: "International Economic Issues", Subtopics: []string{"The reasons for international trade", "Protectionism", "Current account of the balance of payments", "Exchange rates", "Policies to correct imbalances in the current account"}},
					},
				},
				{
					LevelName: "A-Level",
					Topics: []models.Topic{
						{TopicName: "The Price System and the Microeconomy (A Level)", Subtopics: []string{"Utility", "Indifference curves and budget lines", "Efficiency and market failure", "Private costs and benefits, externalities and social costs and benefits", "Types of cost, revenue and profit, short-run and long-run production", "Different market structures", "Growth and survival of firms", "Differing objectives and policies of firms"}},
						{TopicName: "Government Microeconomic Intervention (A Level)", Subtopics: []string{"Government policies to achieve efficient resource allocation and correct market failure", "Equity and redistribution of income and wealth", "Labour market forces and government intervention"}},
						{TopicName: "The Macroeconomy (A Level)", Subtopics: []string{"The circular flow of income", "Economic growth and sustainability", "Employment and unemployment", "Money and banking"}},
						{TopicName: "Government Macroeconomic Intervention (A Level)", Subtopics: []string{"Government macroeconomic policy objectives", "Links between macroeconomic problems and their interrelatedness", "Effectiveness of policy options to meet all macroeconomic objectives"}},
						{TopicName: "International Economic Issues (A Level)", Subtopics: []string{"Policies to correct disequilibrium in the balance of payments", "Exchange rates", "Economic development", "Characteristics of countries at different levels of development", "Relationship between countries at different levels of development", "Globalisation"}},
					},
				},
			},
		},
	}
}
